package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawLine is one line of extracted statement text in document order.
type RawLine struct {
	Index int
	Text  string
	// Date is the date of the enclosing block, when known.
	Date *time.Time
}

// TransactionRecord is one recognized item line, classified into a category.
type TransactionRecord struct {
	Date         *time.Time       `json:"date,omitempty"`
	TxnType      TxnType          `json:"txn_type,omitempty"`
	Category     Category         `json:"category"`
	HeaderAmount *decimal.Decimal `json:"header_amount,omitempty"`
	ItemName     string           `json:"item_name"`
	Qty          *decimal.Decimal `json:"qty,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	AmountSource string           `json:"amount_source"`
	BillNo       *string          `json:"bill_no,omitempty"`
	RawLine      string           `json:"raw_line"`
	LineIndex    int              `json:"line_index"`
	Notes        []string         `json:"parsing_notes,omitempty"`
}

// AddNote appends a parsing note once.
func (r *TransactionRecord) AddNote(note string) {
	for _, n := range r.Notes {
		if n == note {
			return
		}
	}
	r.Notes = append(r.Notes, note)
}

// HasNote reports whether the record carries the given note.
func (r TransactionRecord) HasNote(note string) bool {
	for _, n := range r.Notes {
		if n == note {
			return true
		}
	}
	return false
}

// NotesString joins the notes the way they are exported, or "" when there are none.
func (r TransactionRecord) NotesString() string {
	return strings.Join(r.Notes, ";")
}

// UnitString returns the unit or "" when absent.
func (r TransactionRecord) UnitString() string {
	if r.Unit == nil {
		return ""
	}
	return *r.Unit
}

// PaymentEntry is money received against the ledger.
type PaymentEntry struct {
	Date      *time.Time      `json:"date,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Raw       string          `json:"raw"`
	LineIndex int             `json:"line_index"`
}

// TDSEntry is a tax-deducted-at-source line.
type TDSEntry struct {
	Date      *time.Time      `json:"date,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	BillNo    *string         `json:"bill_no,omitempty"`
	Raw       string          `json:"raw"`
	LineIndex int             `json:"line_index"`
}

// DiscountEntry is a discount credited to the farm.
type DiscountEntry struct {
	Date      *time.Time      `json:"date,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Raw       string          `json:"raw"`
	LineIndex int             `json:"line_index"`
}
