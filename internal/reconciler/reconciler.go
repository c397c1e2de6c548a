// Package reconciler computes the profit/loss summary of a statement and checks
// it against the movement between the stated opening and closing balances.
package reconciler

import (
	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/aggregator"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parsererror"
)

// DefaultTolerance is the largest validation difference accepted by Check.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Input is everything the summary is computed from.
type Input struct {
	Aggregates     models.CategoryAggregates
	Payments       []models.PaymentEntry
	TDS            []models.TDSEntry
	Discounts      []models.DiscountEntry
	OpeningBalance *decimal.Decimal
	ClosingBalance *decimal.Decimal
}

// Summarize computes category totals, grand total and net profit, and the
// validation fields when both balances are known.
//
//	grand_total = eggs - feeds - medicines - other - tds + discounts
//	net_profit  = (eggs + discounts) - (feeds + medicines + other + tds)
//	expected    = closing - opening + payments
//
// Payments are money received and do not enter the profit. Each total is
// rounded to two places first, so the reported net profit always equals the
// formula applied to the reported totals.
func Summarize(in Input) models.StatementSummary {
	eggs := models.Round2(aggregator.Total(in.Aggregates.Eggs))
	feeds := models.Round2(aggregator.Total(in.Aggregates.Feeds))
	meds := models.Round2(aggregator.Total(in.Aggregates.Medicines))
	other := models.Round2(aggregator.Total(in.Aggregates.Other))

	payments := decimal.Zero
	for _, p := range in.Payments {
		payments = payments.Add(p.Amount)
	}
	payments = models.Round2(payments)
	tds := decimal.Zero
	for _, e := range in.TDS {
		tds = tds.Add(e.Amount)
	}
	tds = models.Round2(tds)
	discounts := decimal.Zero
	for _, d := range in.Discounts {
		discounts = discounts.Add(d.Amount)
	}
	discounts = models.Round2(discounts)

	grand := eggs.Sub(feeds).Sub(meds).Sub(other).Sub(tds).Add(discounts)
	net := eggs.Add(discounts).Sub(feeds.Add(meds).Add(other).Add(tds))

	s := models.StatementSummary{
		TotalEggs:       eggs,
		TotalFeeds:      feeds,
		TotalMedicines:  meds,
		TotalOtherItems: other,
		TotalPayments:   payments,
		TotalTDS:        tds,
		TotalDiscounts:  discounts,
		GrandTotal:      grand,
		NetProfit:       net,
		OpeningBalance:  models.Round2Ptr(in.OpeningBalance),
		ClosingBalance:  models.Round2Ptr(in.ClosingBalance),
	}

	if s.OpeningBalance != nil && s.ClosingBalance != nil {
		expected := s.ClosingBalance.Sub(*s.OpeningBalance).Add(payments)
		s.ValidationExpectedNetProfit = models.DecimalPtr(expected)
		s.ValidationDifference = models.DecimalPtr(net.Sub(expected).Abs())
	}
	return s
}

// Check returns a *parsererror.ReconciliationError when the summary's validation
// difference exceeds tolerance. Summaries without both balances always pass.
func Check(s models.StatementSummary, tolerance decimal.Decimal) error {
	if s.ValidationDifference == nil || s.ValidationExpectedNetProfit == nil {
		return nil
	}
	if s.ValidationDifference.LessThanOrEqual(tolerance) {
		return nil
	}
	return &parsererror.ReconciliationError{
		Expected:   *s.ValidationExpectedNetProfit,
		Computed:   s.NetProfit,
		Difference: *s.ValidationDifference,
		Tolerance:  tolerance,
	}
}
