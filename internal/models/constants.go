package models

// Category is the accounting bucket an item line is booked under.
type Category string

// Categories
const (
	CategoryEgg      Category = "egg"
	CategoryFeed     Category = "feed"
	CategoryMedicine Category = "medicine"
	CategoryOther    Category = "other"
)

// Categories lists every category in reporting order.
var Categories = []Category{CategoryEgg, CategoryFeed, CategoryMedicine, CategoryOther}

// IsValid reports whether c is one of the four known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEgg, CategoryFeed, CategoryMedicine, CategoryOther:
		return true
	}
	return false
}

// TxnType is the transaction-type hint derived from a date header.
type TxnType string

// Header transaction types
const (
	TxnEggPurchase    TxnType = "egg_purchase"
	TxnFeedSale       TxnType = "feed_sale"
	TxnPayment        TxnType = "payment"
	TxnTDS            TxnType = "tds"
	TxnDiscount       TxnType = "discount"
	TxnOpeningBalance TxnType = "opening_balance"
	TxnClosingBalance TxnType = "closing_balance"
	TxnOther          TxnType = "other"
)

// Amount sources
const (
	AmountSourceLastToken = "last_token"
	AmountSourceQtyRate   = "qty_rate"
)

// Parsing notes attached to records
const (
	NoteAmountSourceQtyRate   = "amount_source=qty_rate"
	NoteAmountMismatchQtyRate = "amount_mismatch_qty_rate"
	NoteUnitKgForEgg          = "unit_kg_for_egg"
	NoteUnitNotKgForFeed      = "unit_not_kg_for_feed"
	NoteCategoryDiffersHeader = "category_different_than_header"
	NoteAutoClassifiedToEgg   = "auto_classified_to_egg"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
