package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents. It decodes from a JSON integer holding cents
// or from a decimal string in major units ("150.25").
type Money int64

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("invalid amount %q", s)
		}

		*m = Money(d.Shift(2).Round(0).IntPart())

		return nil
	}

	var cents int64
	if err := json.Unmarshal(b, &cents); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	*m = Money(cents)

	return nil
}

// Ptr converts an optional Money to optional cents.
func (m *Money) Ptr() *int64 {
	if m == nil {
		return nil
	}

	return new(int64(*m))
}
