package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/parsererror"
)

var errEmptyAmount = errors.New("empty amount")

// MoneyPlaces is the number of decimal places every monetary output is rounded to.
const MoneyPlaces int32 = 2

// Round2 rounds a monetary value to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Round2Ptr rounds an optional monetary value, keeping nil as nil.
func Round2Ptr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := Round2(*d)
	return &r
}

// DecimalPtr returns a pointer to a copy of d.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// ValueOrZero returns the pointed-to value, or zero for nil.
func ValueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ParseAmount parses a ledger number such as "4,05,455.15" or "1,000" into a decimal.
// Thousands separators in any grouping are stripped.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return decimal.Zero, &parsererror.ParseError{Parser: "amount", Field: "amount", Value: s, Err: errEmptyAmount}
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Parser: "amount", Field: "amount", Value: s, Err: err}
	}
	return d, nil
}

// FormatOptional renders an optional amount with two places, or "" for nil.
func FormatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(MoneyPlaces)
}
