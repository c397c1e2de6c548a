package models

import (
	"github.com/shopspring/decimal"
)

// AggregateRow is the sum of all records sharing an (item name, unit) pair in one category.
type AggregateRow struct {
	ItemName    string          `json:"item_name"`
	Unit        *string         `json:"unit,omitempty"`
	TotalQty    decimal.Decimal `json:"total_qty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CategoryAggregates holds one aggregate table per category.
type CategoryAggregates struct {
	Eggs      []AggregateRow `json:"eggs"`
	Feeds     []AggregateRow `json:"feeds"`
	Medicines []AggregateRow `json:"medicines"`
	Other     []AggregateRow `json:"other_items"`
}

// Rows returns the table for a category.
func (a CategoryAggregates) Rows(c Category) []AggregateRow {
	switch c {
	case CategoryEgg:
		return a.Eggs
	case CategoryFeed:
		return a.Feeds
	case CategoryMedicine:
		return a.Medicines
	default:
		return a.Other
	}
}

// StatementSummary is the profit/loss summary of one statement.
// Validation fields are nil unless both balances were found.
type StatementSummary struct {
	TotalEggs                   decimal.Decimal  `json:"total_eggs"`
	TotalFeeds                  decimal.Decimal  `json:"total_feeds"`
	TotalMedicines              decimal.Decimal  `json:"total_medicines"`
	TotalOtherItems             decimal.Decimal  `json:"total_other_items"`
	TotalPayments               decimal.Decimal  `json:"total_payments"`
	TotalTDS                    decimal.Decimal  `json:"total_tds"`
	TotalDiscounts              decimal.Decimal  `json:"total_discounts"`
	GrandTotal                  decimal.Decimal  `json:"grand_total"`
	NetProfit                   decimal.Decimal  `json:"net_profit"`
	OpeningBalance              *decimal.Decimal `json:"opening_balance,omitempty"`
	ClosingBalance              *decimal.Decimal `json:"closing_balance,omitempty"`
	ValidationExpectedNetProfit *decimal.Decimal `json:"validation_expected_net_profit,omitempty"`
	ValidationDifference        *decimal.Decimal `json:"validation_difference,omitempty"`
}

// Metric is one named summary value, in export order.
type Metric struct {
	Name  string
	Value *decimal.Decimal
}

// Metrics flattens the summary into its exported metric/value pairs.
// Validation metrics are omitted when absent.
func (s StatementSummary) Metrics() []Metric {
	metrics := []Metric{
		{"total_eggs", DecimalPtr(s.TotalEggs)},
		{"total_feeds", DecimalPtr(s.TotalFeeds)},
		{"total_medicines", DecimalPtr(s.TotalMedicines)},
		{"total_other_items", DecimalPtr(s.TotalOtherItems)},
		{"total_payments", DecimalPtr(s.TotalPayments)},
		{"total_tds", DecimalPtr(s.TotalTDS)},
		{"total_discounts", DecimalPtr(s.TotalDiscounts)},
		{"grand_total", DecimalPtr(s.GrandTotal)},
		{"net_profit", DecimalPtr(s.NetProfit)},
		{"opening_balance", s.OpeningBalance},
		{"closing_balance", s.ClosingBalance},
	}
	if s.ValidationDifference != nil {
		metrics = append(metrics,
			Metric{"validation_expected_net_profit", s.ValidationExpectedNetProfit},
			Metric{"validation_difference", s.ValidationDifference})
	}
	return metrics
}

// Result is everything produced by parsing one statement.
type Result struct {
	Records    []TransactionRecord `json:"raw_items"`
	Aggregates CategoryAggregates  `json:"aggregates"`
	Payments   []PaymentEntry      `json:"payments"`
	TDS        []TDSEntry          `json:"tds"`
	Discounts  []DiscountEntry     `json:"discounts"`
	Summary    StatementSummary    `json:"summary"`
}

// NotedRecords returns the records that carry at least one parsing note.
func (r *Result) NotedRecords() []TransactionRecord {
	var noted []TransactionRecord
	for _, rec := range r.Records {
		if len(rec.Notes) > 0 {
			noted = append(noted, rec)
		}
	}
	return noted
}
