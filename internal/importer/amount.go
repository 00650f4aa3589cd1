package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errBadAmount = errors.New("invalid amount")

var currencyMarks = strings.NewReplacer("€", "", "$", "", "£", "", "EUR", "", "eur", "", " ", "", "\u00a0", "")

// parseAmount converts "1.234,56", "1,234.56", "1234.5" or "150" into cents.
// The right-most separator followed by one or two digits is the decimal
// separator; every other separator groups thousands.
func parseAmount(s string) (int64, error) {
	clean := currencyMarks.Replace(s)
	if clean == "" {
		return 0, errBadAmount
	}

	dec := decimalSeparator(clean)

	var b strings.Builder

	for i, r := range clean {
		switch {
		case r == '.' || r == ',':
			if i == dec {
				b.WriteByte('.')
			}
		default:
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0, errBadAmount
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents <= 0 {
		return 0, errBadAmount
	}

	return cents, nil
}

// decimalSeparator returns the byte index of the decimal separator in s, or
// -1 when s has none.
func decimalSeparator(s string) int {
	idx := strings.LastIndexAny(s, ".,")
	if idx < 0 {
		return -1
	}

	digits := len(s) - idx - 1
	if digits == 1 || digits == 2 {
		return idx
	}

	// "1,000" or "1.000" with a single separator kind and three trailing
	// digits is a thousands group; "1.000,000" would be malformed anyway.
	return -1
}
