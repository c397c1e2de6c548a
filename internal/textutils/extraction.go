// Package textutils provides text extraction and manipulation utilities.
package textutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/models"
)

// NumberPattern matches a ledger number token, with or without thousands separators.
var NumberPattern = regexp.MustCompile(`[\d,]+\.\d+|[\d,]+`)

var (
	leadingNumberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	billNoPattern        = regexp.MustCompile(`BILL\s*NO\.?\s*(\d+)|BILLNO\s*(\d+)`)
	billNoBodyPattern    = regexp.MustCompile(`BILLNO\s*(\d+)|BILL\s*NO[:\s]*(\d+)`)
	strayBillNoPattern   = regexp.MustCompile(`TDS DEDUCTED BILL NO[:\s]*(\d+)|BILLNO\s*(\d+)`)
)

// Tokenize splits a line on whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ContainsNumber reports whether a token contains a digit run.
func ContainsNumber(token string) bool {
	return NumberPattern.MatchString(token) && strings.ContainsAny(token, "0123456789")
}

// ParseNumber converts a token into a decimal. Separators are stripped first; when the
// token still does not parse, the first embedded number is used ("90/KGS" -> 90).
func ParseNumber(token string) (decimal.Decimal, bool) {
	if d, err := models.ParseAmount(token); err == nil {
		return d, true
	}
	m := leadingNumberPattern.FindString(strings.ReplaceAll(token, ",", ""))
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// LastNumber returns the rightmost number anywhere in text.
func LastNumber(text string) (decimal.Decimal, bool) {
	all := NumberPattern.FindAllString(text, -1)
	for i := len(all) - 1; i >= 0; i-- {
		if d, ok := ParseNumber(all[i]); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

// ExtractBillNumber finds a "BILL NO 123" / "BILLNO 123" reference in upper-cased text.
func ExtractBillNumber(upper string) (string, bool) {
	return firstGroup(billNoPattern, upper)
}

// ExtractBodyBillNumber is the looser variant used on block body lines ("BILL NO: 123").
func ExtractBodyBillNumber(upper string) (string, bool) {
	return firstGroup(billNoBodyPattern, upper)
}

// ExtractStrayBillNumber finds bill references on lines outside any date block.
func ExtractStrayBillNumber(upper string) (string, bool) {
	return firstGroup(strayBillNoPattern, upper)
}

func firstGroup(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return g, true
		}
	}
	return "", false
}
