package ledgerparser

import (
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/textutils"
)

// qtyRateMatchTolerance is how close a token must be to qty×rate to be taken as the amount.
var qtyRateMatchTolerance = decimal.RequireFromString("0.01")

// mismatchTolerance is how far the amount may stray from qty×rate before it is flagged.
var mismatchTolerance = decimal.RequireFromString("0.1")

var unitWords = map[string]struct{}{
	"kgs": {}, "kg": {}, "nos": {}, "no": {}, "nos.": {},
}

// ItemLine is the structured content of one item line.
type ItemLine struct {
	ItemName     string
	Qty          *decimal.Decimal
	Unit         *string
	Rate         *decimal.Decimal
	Amount       decimal.Decimal
	AmountSource string
}

// IsItemLine reports whether a line is a candidate item line (it mentions KGS or NOS as a unit).
func IsItemLine(line string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, " KGS") || strings.Contains(upper, " NOS") ||
		strings.Contains(upper, "/KGS") || strings.Contains(upper, "/NOS")
}

func isUnitWord(token string) bool {
	_, ok := unitWords[strings.ToLower(token)]
	return ok
}

func numberPtr(token string) *decimal.Decimal {
	if !textutils.ContainsNumber(token) {
		return nil
	}
	if v, ok := textutils.ParseNumber(token); ok {
		return &v
	}
	return nil
}

func unitPtr(token string) *string {
	if token == "" {
		return nil
	}
	u := strings.ToUpper(token)
	return &u
}

// ParseItemLine splits an item line into name, quantity, unit, rate and amount.
// ok is false when no safe amount token exists or the item name comes out empty.
// With preferQtyRate, a token equal to round(qty×rate, 2) wins over the rightmost number.
func ParseItemLine(line string, preferQtyRate bool) (ItemLine, bool) {
	tokens := textutils.Tokenize(line)
	amountTok, ok := FindAmountToken(tokens)
	if !ok {
		return ItemLine{}, false
	}

	item := ItemLine{Amount: amountTok.Value, AmountSource: models.AmountSourceLastToken}
	var name []string

	rateIdx := -1
	for i, t := range tokens {
		if strings.Contains(t, "/") {
			rateIdx = i
			break
		}
	}

	// splitAtUnit treats tokens[u] as the unit, tokens[u-1] as the quantity and
	// everything before that as the name.
	splitAtUnit := func(u int) {
		item.Unit = unitPtr(tokens[u])
		if u > 0 {
			item.Qty = numberPtr(tokens[u-1])
			name = tokens[:u-1]
		}
	}

	if rateIdx >= 0 {
		rateTok := tokens[rateIdx]
		parts := strings.SplitN(rateTok, "/", 2)
		if v, ok := textutils.ParseNumber(parts[0]); ok && parts[0] != "" {
			item.Rate = &v
		}
		prev := rateIdx - 1
		switch {
		case prev >= 0 && isUnitWord(tokens[prev]):
			splitAtUnit(prev)
		case prev >= 0 && textutils.ContainsNumber(tokens[prev]):
			item.Qty = numberPtr(tokens[prev])
			item.Unit = unitPtr(parts[1])
			name = tokens[:prev]
		default:
			for k := rateIdx - 1; k >= 0; k-- {
				if isUnitWord(tokens[k]) {
					item.Unit = unitPtr(tokens[k])
					if k > 0 && textutils.ContainsNumber(tokens[k-1]) {
						item.Qty = numberPtr(tokens[k-1])
						name = tokens[:k-1]
					} else {
						name = tokens[:k]
					}
					break
				}
			}
			if len(name) == 0 {
				name = tokens[:amountTok.Index]
			}
		}
	} else {
		unitIdx := -1
		for i, t := range tokens {
			if isUnitWord(t) {
				unitIdx = i
				break
			}
		}
		if unitIdx >= 0 {
			item.Unit = unitPtr(tokens[unitIdx])
			if unitIdx > 0 && textutils.ContainsNumber(tokens[unitIdx-1]) {
				item.Qty = numberPtr(tokens[unitIdx-1])
				name = tokens[:unitIdx-1]
			} else {
				name = tokens[:unitIdx]
			}
		} else {
			name = tokens[:amountTok.Index]
		}
	}

	item.ItemName = strings.ToUpper(strings.TrimSpace(strings.Join(name, " ")))
	if item.ItemName == "" {
		return ItemLine{}, false
	}

	if preferQtyRate && item.Qty != nil && item.Rate != nil && !item.Rate.IsZero() {
		expected := models.Round2(item.Qty.Mul(*item.Rate))
		for i := len(tokens) - 1; i >= 0; i-- {
			if !textutils.ContainsNumber(tokens[i]) {
				continue
			}
			v, ok := textutils.ParseNumber(tokens[i])
			if !ok {
				continue
			}
			if v.Sub(expected).Abs().LessThan(qtyRateMatchTolerance) {
				item.Amount = v
				item.AmountSource = models.AmountSourceQtyRate
				break
			}
		}
	}

	item.Amount = models.Round2(item.Amount)
	return item, true
}

// ExpectedAmount returns round(qty×rate, 2) when both are known.
func (i ItemLine) ExpectedAmount() (decimal.Decimal, bool) {
	if i.Qty == nil || i.Rate == nil {
		return decimal.Zero, false
	}
	return models.Round2(i.Qty.Mul(*i.Rate)), true
}
