// Package aggregator groups classified item records into per-category totals.
package aggregator

import (
	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/models"
)

// Aggregator sums records per (item name, unit) within each category.
type Aggregator struct {
	normalizeEggNames bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithEggNameNormalization groups egg rows under their canonical egg names.
func WithEggNameNormalization(enabled bool) Option {
	return func(a *Aggregator) {
		a.normalizeEggNames = enabled
	}
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type groupKey struct {
	name    string
	unit    string
	hasUnit bool
}

// Aggregate builds one table per category. Rows keep the order in which their
// (item name, unit) pair was first seen; a missing unit is its own key and a
// missing quantity counts as zero.
func (a *Aggregator) Aggregate(records []models.TransactionRecord) models.CategoryAggregates {
	tables := make(map[models.Category][]models.AggregateRow, len(models.Categories))
	positions := make(map[models.Category]map[groupKey]int, len(models.Categories))

	for _, rec := range records {
		category := rec.Category
		if !category.IsValid() {
			category = models.CategoryOther
		}
		name := rec.ItemName
		if a.normalizeEggNames && category == models.CategoryEgg {
			name, _ = categorizer.NormalizeEggName(name)
		}

		key := groupKey{name: name}
		if rec.Unit != nil {
			key.unit, key.hasUnit = *rec.Unit, true
		}

		pos, ok := positions[category]
		if !ok {
			pos = make(map[groupKey]int)
			positions[category] = pos
		}
		idx, seen := pos[key]
		if !seen {
			row := models.AggregateRow{ItemName: name, TotalQty: decimal.Zero, TotalAmount: decimal.Zero}
			if key.hasUnit {
				u := key.unit
				row.Unit = &u
			}
			tables[category] = append(tables[category], row)
			idx = len(tables[category]) - 1
			pos[key] = idx
		}

		row := &tables[category][idx]
		row.TotalQty = row.TotalQty.Add(models.ValueOrZero(rec.Qty))
		row.TotalAmount = row.TotalAmount.Add(rec.Amount)
	}

	return models.CategoryAggregates{
		Eggs:      tables[models.CategoryEgg],
		Feeds:     tables[models.CategoryFeed],
		Medicines: tables[models.CategoryMedicine],
		Other:     tables[models.CategoryOther],
	}
}

// Total sums the amounts of an aggregate table.
func Total(rows []models.AggregateRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalAmount)
	}
	return total
}
