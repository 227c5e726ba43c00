// Package validation provides form-field validators accumulating
// violations into a map keyed by field name.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MinLen(field, value string, min int, v Violations) {
	if len(strings.TrimSpace(value)) < min {
		v[field] = "too_short"
	}
}

// NonNegativeDecimal rejects negative amounts; zero is allowed.
func NonNegativeDecimal(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

// DecimalRange rejects values outside [min, max].
func DecimalRange(field string, val, min, max decimal.Decimal, v Violations) {
	if val.LessThan(min) || val.GreaterThan(max) {
		v[field] = "out_of_range"
	}
}
