package ledgerparser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/textutils"
)

var toTDSPattern = regexp.MustCompile(`\bTO\s+TDS\b`)

// ScanState is the mutable context threaded through one statement scan.
type ScanState struct {
	// LastBillNo is the most recent bill reference seen in document order.
	LastBillNo *string
}

func (s *ScanState) setBill(bill string, ok bool) {
	if ok {
		b := bill
		s.LastBillNo = &b
	}
}

// billCopy returns an independent copy of the last bill number for a record.
func (s *ScanState) billCopy() *string {
	if s.LastBillNo == nil {
		return nil
	}
	b := *s.LastBillNo
	return &b
}

// ancillary collects payments, TDS, discounts and balances. Every amount is
// rounded to two places as it is captured.
type ancillary struct {
	paymentKeywords []string
	payments        []models.PaymentEntry
	tds             []models.TDSEntry
	discounts       []models.DiscountEntry
	opening         *decimal.Decimal
	closing         *decimal.Decimal
	// tdsLines holds the line indices already recorded as TDS entries.
	tdsLines map[int]bool
}

func newAncillary(paymentKeywords []string) *ancillary {
	return &ancillary{paymentKeywords: paymentKeywords, tdsLines: make(map[int]bool)}
}

// captureHeader records what a header line states on its own.
func (a *ancillary) captureHeader(h Header, state *ScanState) {
	if h.Amount == nil {
		return
	}
	amount := models.Round2(*h.Amount)
	switch h.TxnType {
	case models.TxnPayment:
		a.payments = append(a.payments, models.PaymentEntry{
			Date: h.Date, Amount: amount, Raw: h.Line, LineIndex: h.LineIndex,
		})
	case models.TxnTDS:
		a.addTDS(models.TDSEntry{
			Date: h.Date, Amount: amount, BillNo: state.billCopy(), Raw: h.Line, LineIndex: h.LineIndex,
		})
	case models.TxnDiscount:
		a.discounts = append(a.discounts, models.DiscountEntry{
			Date: h.Date, Amount: amount, Raw: h.Line, LineIndex: h.LineIndex,
		})
	case models.TxnOpeningBalance:
		a.opening = models.DecimalPtr(amount)
	case models.TxnClosingBalance:
		a.closing = models.DecimalPtr(amount)
	}
}

// isToTDS reports whether an upper-cased line is a "To TDS" entry.
func isToTDS(upper string) bool {
	return toTDSPattern.MatchString(upper) || strings.HasPrefix(upper, "TO TDS")
}

// captureTDSLine records a "To TDS" body line. It reports whether an entry was added.
func (a *ancillary) captureTDSLine(line models.RawLine, text string, date *time.Time) bool {
	upper := strings.ToUpper(text)
	if !isToTDS(upper) {
		return false
	}
	amt, ok := FindAmountToken(textutils.Tokenize(text))
	if !ok {
		return false
	}
	var bill *string
	if b, ok := textutils.ExtractBillNumber(upper); ok {
		bill = &b
	}
	return a.addTDS(models.TDSEntry{Date: date, Amount: models.Round2(amt.Value), BillNo: bill, Raw: text, LineIndex: line.Index})
}

// captureNonItemLine records discounts and payments from a body line that is not an item line.
func (a *ancillary) captureNonItemLine(line models.RawLine, text string, h Header) {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "DISCOUNT") || strings.Contains(h.Text, "DISCOUNT") {
		if amt, ok := textutils.LastNumber(text); ok {
			a.discounts = append(a.discounts, models.DiscountEntry{
				Date: h.Date, Amount: models.Round2(amt), Raw: text, LineIndex: line.Index,
			})
		}
	}
	if containsAny(upper, a.paymentKeywords) {
		amt, ok := textutils.LastNumber(text)
		if !ok {
			if h.Amount == nil {
				return
			}
			amt = *h.Amount
		}
		a.payments = append(a.payments, models.PaymentEntry{
			Date: h.Date, Amount: models.Round2(amt), Raw: text, LineIndex: line.Index,
		})
	}
}

func (a *ancillary) addTDS(e models.TDSEntry) bool {
	if a.tdsLines[e.LineIndex] {
		return false
	}
	a.tdsLines[e.LineIndex] = true
	a.tds = append(a.tds, e)
	return true
}

// postPass sweeps every line for "To TDS" entries the block scan missed and for a
// closing balance printed outside a closing-balance header.
func (a *ancillary) postPass(lines []models.RawLine, headerDates map[int]*time.Time) {
	var lastDate *time.Time
	for _, line := range lines {
		if d, isHeader := headerDates[line.Index]; isHeader {
			lastDate = d
		}
		upper := strings.ToUpper(line.Text)
		if strings.Contains(upper, "TO TDS") && !a.tdsLines[line.Index] {
			if amt, ok := FindAmountToken(textutils.Tokenize(line.Text)); ok {
				a.addTDS(models.TDSEntry{
					Date: lastDate, Amount: models.Round2(amt.Value), Raw: strings.TrimSpace(line.Text), LineIndex: line.Index,
				})
			}
		}
		if a.closing == nil && strings.Contains(upper, "CLOSING BALANCE") {
			if amt, ok := FindAmountToken(textutils.Tokenize(line.Text)); ok {
				a.closing = models.DecimalPtr(models.Round2(amt.Value))
			}
		}
	}
}
