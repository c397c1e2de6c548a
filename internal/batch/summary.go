package batch

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/export"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// Batch summary outputs, written to the output directory.
const (
	SummaryFileName         = "batch_summary.csv"
	SummaryWorkbookFileName = "batch_summary.xlsx"

	SheetMonthlySummary = "monthly_summary"
	SheetYearlyTotals   = "yearly_totals"
)

// MonthlySummary is the outcome of one statement in a batch.
type MonthlySummary struct {
	File       string
	ParsedFile string
	Period     Period
	Summary    models.StatementSummary
	Err        error
}

// OK reports whether the statement was parsed and exported.
func (m MonthlySummary) OK() bool {
	return m.Err == nil
}

// YearlyTotals are the sums over the successful months of a batch.
type YearlyTotals struct {
	Months          int
	OpeningBalance  *decimal.Decimal
	ClosingBalance  *decimal.Decimal
	TotalEggs       decimal.Decimal
	TotalFeeds      decimal.Decimal
	TotalMedicines  decimal.Decimal
	TotalOtherItems decimal.Decimal
	TotalPayments   decimal.Decimal
	TotalTDS        decimal.Decimal
	TotalDiscounts  decimal.Decimal
	NetProfit       decimal.Decimal
}

// ComputeYearlyTotals sums successful months. The opening balance is the first
// month's and the closing balance the last month's, in the order given.
func ComputeYearlyTotals(months []MonthlySummary) YearlyTotals {
	var t YearlyTotals
	for _, m := range months {
		if !m.OK() {
			continue
		}
		s := m.Summary
		if t.Months == 0 {
			t.OpeningBalance = s.OpeningBalance
		}
		t.ClosingBalance = s.ClosingBalance
		t.Months++
		t.TotalEggs = t.TotalEggs.Add(s.TotalEggs)
		t.TotalFeeds = t.TotalFeeds.Add(s.TotalFeeds)
		t.TotalMedicines = t.TotalMedicines.Add(s.TotalMedicines)
		t.TotalOtherItems = t.TotalOtherItems.Add(s.TotalOtherItems)
		t.TotalPayments = t.TotalPayments.Add(s.TotalPayments)
		t.TotalTDS = t.TotalTDS.Add(s.TotalTDS)
		t.TotalDiscounts = t.TotalDiscounts.Add(s.TotalDiscounts)
		t.NetProfit = t.NetProfit.Add(s.NetProfit)
	}
	return t
}

// summaryRow is one line of batch_summary.csv.
type summaryRow struct {
	Month                string        `csv:"month"`
	MonthAbbr            string        `csv:"month_abbr"`
	OpeningBalance       export.Amount `csv:"opening_balance"`
	ClosingBalance       export.Amount `csv:"closing_balance"`
	TotalEggs            export.Amount `csv:"total_eggs"`
	TotalFeeds           export.Amount `csv:"total_feeds"`
	TotalMedicines       export.Amount `csv:"total_medicines"`
	TotalOtherItems      export.Amount `csv:"total_other_items"`
	TotalPayments        export.Amount `csv:"total_payments"`
	TotalTDS             export.Amount `csv:"total_tds"`
	TotalDiscounts       export.Amount `csv:"total_discounts"`
	NetProfit            export.Amount `csv:"net_profit"`
	ValidationDifference export.Amount `csv:"validation_difference"`
	File                 string        `csv:"file"`
	ParsedFile           string        `csv:"parsed_file"`
	Error                string        `csv:"error"`
}

// Cells implements export.Row.
func (r summaryRow) Cells() []interface{} {
	return []interface{}{
		r.Month, r.MonthAbbr, r.OpeningBalance.Cell(), r.ClosingBalance.Cell(),
		r.TotalEggs.Cell(), r.TotalFeeds.Cell(), r.TotalMedicines.Cell(), r.TotalOtherItems.Cell(),
		r.TotalPayments.Cell(), r.TotalTDS.Cell(), r.TotalDiscounts.Cell(), r.NetProfit.Cell(),
		r.ValidationDifference.Cell(), r.File, r.ParsedFile, r.Error,
	}
}

func amountOf(d decimal.Decimal) export.Amount {
	return export.NewAmount(&d)
}

func monthRow(m MonthlySummary) summaryRow {
	row := summaryRow{
		Month:     m.Period.String(),
		MonthAbbr: m.Period.Abbr,
		File:      m.File,
	}
	if !m.OK() {
		row.Error = m.Err.Error()
		return row
	}
	s := m.Summary
	row.ParsedFile = m.ParsedFile
	row.OpeningBalance = export.NewAmount(s.OpeningBalance)
	row.ClosingBalance = export.NewAmount(s.ClosingBalance)
	row.TotalEggs = amountOf(s.TotalEggs)
	row.TotalFeeds = amountOf(s.TotalFeeds)
	row.TotalMedicines = amountOf(s.TotalMedicines)
	row.TotalOtherItems = amountOf(s.TotalOtherItems)
	row.TotalPayments = amountOf(s.TotalPayments)
	row.TotalTDS = amountOf(s.TotalTDS)
	row.TotalDiscounts = amountOf(s.TotalDiscounts)
	row.NetProfit = amountOf(s.NetProfit)
	row.ValidationDifference = export.NewAmount(s.ValidationDifference)
	return row
}

func totalsRow(t YearlyTotals) summaryRow {
	return summaryRow{
		Month:           fmt.Sprintf("TOTAL (%d months)", t.Months),
		OpeningBalance:  export.NewAmount(t.OpeningBalance),
		ClosingBalance:  export.NewAmount(t.ClosingBalance),
		TotalEggs:       amountOf(t.TotalEggs),
		TotalFeeds:      amountOf(t.TotalFeeds),
		TotalMedicines:  amountOf(t.TotalMedicines),
		TotalOtherItems: amountOf(t.TotalOtherItems),
		TotalPayments:   amountOf(t.TotalPayments),
		TotalTDS:        amountOf(t.TotalTDS),
		TotalDiscounts:  amountOf(t.TotalDiscounts),
		NetProfit:       amountOf(t.NetProfit),
	}
}

func summaryRows(months []MonthlySummary, totals YearlyTotals) []summaryRow {
	rows := make([]summaryRow, 0, len(months)+1)
	for _, m := range months {
		rows = append(rows, monthRow(m))
	}
	return append(rows, totalsRow(totals))
}

// yearlyMetrics lists the totals in the order of the statement summary sheet.
func yearlyMetrics(t YearlyTotals) []export.MetricRow {
	months := decimal.NewFromInt(int64(t.Months))
	return []export.MetricRow{
		{Metric: "months", Value: export.NewAmount(&months)},
		{Metric: "opening_balance", Value: export.NewAmount(t.OpeningBalance)},
		{Metric: "closing_balance", Value: export.NewAmount(t.ClosingBalance)},
		{Metric: "total_eggs", Value: amountOf(t.TotalEggs)},
		{Metric: "total_feeds", Value: amountOf(t.TotalFeeds)},
		{Metric: "total_medicines", Value: amountOf(t.TotalMedicines)},
		{Metric: "total_other_items", Value: amountOf(t.TotalOtherItems)},
		{Metric: "total_payments", Value: amountOf(t.TotalPayments)},
		{Metric: "total_tds", Value: amountOf(t.TotalTDS)},
		{Metric: "total_discounts", Value: amountOf(t.TotalDiscounts)},
		{Metric: "net_profit", Value: amountOf(t.NetProfit)},
	}
}

// WriteSummary writes one row per month followed by the totals row.
func WriteSummary(path string, months []MonthlySummary, totals YearlyTotals, delimiter rune) error {
	rows := summaryRows(months, totals)
	if err := export.WriteCSV(rows, path, delimiter); err != nil {
		return fmt.Errorf("error writing batch summary: %w", err)
	}
	return nil
}

// WriteSummaryWorkbook writes the yearly workbook: a monthly_summary sheet with
// the same rows as the CSV summary and a yearly_totals sheet of metrics.
func WriteSummaryWorkbook(path string, months []MonthlySummary, totals YearlyTotals, logger logging.Logger) error {
	tables := []export.Table{
		export.NewTable(SheetMonthlySummary, summaryRows(months, totals)),
		export.NewTable(SheetYearlyTotals, yearlyMetrics(totals)),
	}
	if err := export.WriteWorkbook(path, tables, logger); err != nil {
		return fmt.Errorf("error writing batch summary workbook: %w", err)
	}
	return nil
}
