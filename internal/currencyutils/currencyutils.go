// Package currencyutils provides the currency formatting used when printing statement summaries.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes amounts printed by FormatRupees.
const RupeeSymbol = "₹"

// FormatIndian formats an amount with two decimal places and Indian digit grouping:
// the last three integer digits form one group and the rest are grouped in pairs.
// e.g., 1234567.891 returns "12,34,567.89"
func FormatIndian(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupIndian(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatOptionalIndian formats an optional amount, returning "-" when it is absent.
func FormatOptionalIndian(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return FormatIndian(*amount)
}

// FormatRupees formats an amount with the rupee symbol, e.g. "₹ 4,05,455.15".
func FormatRupees(amount decimal.Decimal) string {
	return RupeeSymbol + " " + FormatIndian(amount)
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
