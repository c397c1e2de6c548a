package ledgerparser

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/textutils"
)

// referenceLabels are tokens that announce a reference number rather than money.
var referenceLabels = map[string]struct{}{
	"BILL": {}, "BILLNO": {}, "BILLNO:": {}, "NO": {},
	"INV": {}, "INVOICE": {}, "SL": {}, "SR": {}, "SL.": {}, "SR.": {},
}

// AmountToken is the numeric token chosen as a line's amount.
type AmountToken struct {
	Index int
	Text  string
	Value decimal.Decimal
}

// FindAmountToken scans tokens right to left for the first number that is not
// labelled as a bill, invoice or serial reference. It never falls back to a
// labelled number: ok is false when every candidate is a reference.
func FindAmountToken(tokens []string) (AmountToken, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !textutils.ContainsNumber(tokens[i]) {
			continue
		}
		if i > 0 {
			if _, labelled := referenceLabels[strings.ToUpper(tokens[i-1])]; labelled {
				continue
			}
		}
		v, ok := textutils.ParseNumber(tokens[i])
		if !ok {
			continue
		}
		return AmountToken{Index: i, Text: tokens[i], Value: v}, true
	}
	return AmountToken{}, false
}

// FindLastNumberToken returns the rightmost numeric token with no label filtering.
func FindLastNumberToken(tokens []string) (AmountToken, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !textutils.ContainsNumber(tokens[i]) {
			continue
		}
		if v, ok := textutils.ParseNumber(tokens[i]); ok {
			return AmountToken{Index: i, Text: tokens[i], Value: v}, true
		}
	}
	return AmountToken{}, false
}
