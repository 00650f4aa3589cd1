package httpx

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date decodes either a calendar date ("2026-06-20") or an RFC 3339
// timestamp. Calendar dates are taken as midnight UTC.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("invalid date %q", s)
}

// TimePtr converts an optional Date.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}

	return new(d.Time)
}

// QueryDate parses an optional calendar date query parameter.
func QueryDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", v)
	}

	return &t, nil
}
