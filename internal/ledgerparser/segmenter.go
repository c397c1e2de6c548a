package ledgerparser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/dateutils"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/textutils"
)

// DefaultPaymentKeywords mark a header or body line as money received.
var DefaultPaymentKeywords = []string{"CANARA BANK", "PAYMENT"}

var tdsWordPattern = regexp.MustCompile(`\bTDS\b`)

// Header is a parsed date header line.
type Header struct {
	LineIndex int
	// Line is the trimmed header line as printed.
	Line      string
	DateToken string
	Date      *time.Time
	// Text is the upper-cased header text after the date.
	Text    string
	TxnType models.TxnType
	Amount  *decimal.Decimal
	BillNo  *string
}

// Block is a date header with the lines that follow it, up to the next header.
type Block struct {
	Header Header
	Body   []models.RawLine
}

// Segmentation is a statement split into the lines before the first header and its blocks.
type Segmentation struct {
	Leading []models.RawLine
	Blocks  []Block
}

// ClassifyHeader maps upper-cased header text to its transaction-type hint.
// The order of the checks is significant: an egg purchase header that also
// mentions a payment is still an egg purchase.
func ClassifyHeader(text string, paymentKeywords []string) models.TxnType {
	switch {
	case strings.Contains(text, "POULTRY EGG") || strings.Contains(text, "EGG PURCHASE"):
		return models.TxnEggPurchase
	case strings.Contains(text, "POULTRY FEED") || strings.Contains(text, "FEED SALES"):
		return models.TxnFeedSale
	case containsAny(text, paymentKeywords):
		return models.TxnPayment
	case tdsWordPattern.MatchString(text) && !strings.Contains(text, "DEDUCTED"):
		return models.TxnTDS
	case strings.Contains(text, "DISCOUNT"):
		return models.TxnDiscount
	case strings.Contains(text, "OPENING BALANCE"):
		return models.TxnOpeningBalance
	case strings.Contains(text, "CLOSING BALANCE"):
		return models.TxnClosingBalance
	default:
		return models.TxnOther
	}
}

// ParseHeader recognizes a date header line.
func ParseHeader(line models.RawLine, paymentKeywords []string) (Header, bool) {
	dateToken, rest, ok := dateutils.MatchHeader(line.Text)
	if !ok {
		return Header{}, false
	}
	text := strings.ToUpper(rest)
	h := Header{
		LineIndex: line.Index,
		Line:      strings.TrimSpace(line.Text),
		DateToken: dateToken,
		Date:      dateutils.ParseLedgerDate(dateToken),
		Text:      text,
		TxnType:   ClassifyHeader(text, paymentKeywords),
	}
	if amt, ok := textutils.LastNumber(text); ok {
		h.Amount = models.DecimalPtr(models.Round2(amt))
	}
	if bill, ok := textutils.ExtractBillNumber(text); ok {
		h.BillNo = &bill
	}
	return h, true
}

// Segment splits lines into date-headed blocks. Lines before the first header
// are returned as Leading. Body lines carry their block's date.
func Segment(lines []models.RawLine, paymentKeywords []string) Segmentation {
	var seg Segmentation
	var current *Block
	for _, line := range lines {
		if h, ok := ParseHeader(line, paymentKeywords); ok {
			seg.Blocks = append(seg.Blocks, Block{Header: h})
			current = &seg.Blocks[len(seg.Blocks)-1]
			continue
		}
		if current == nil {
			seg.Leading = append(seg.Leading, line)
			continue
		}
		line.Date = current.Header.Date
		current.Body = append(current.Body, line)
	}
	return seg
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToUpper(k)) {
			return true
		}
	}
	return false
}
