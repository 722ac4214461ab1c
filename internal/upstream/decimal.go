package upstream

import (
	"github.com/shopspring/decimal"
)

// ParseDecimal converts a string-encoded decimal into a float64. Failures are
// reported as ErrNumericParse naming field.
func ParseDecimal(field, s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, Field(field, ErrNumericParse)
	}
	return d.InexactFloat64(), nil
}
