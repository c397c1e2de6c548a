package export

import (
	"reflect"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/poultry-ledger/internal/dateutils"
	"fjacquet/poultry-ledger/internal/models"
)

// Sheet names, in workbook order.
const (
	SheetRawRows       = "raw_rows"
	SheetEggs          = "eggs"
	SheetFeeds         = "feeds"
	SheetMedicines     = "medicines"
	SheetOtherItems    = "other_items"
	SheetPayments      = "payments"
	SheetTDS           = "tds"
	SheetDiscounts     = "discounts"
	SheetSummary       = "summary"
	SheetAmbiguousRows = "ambiguous_rows"
)

// DefaultDateFormat renders dates the way the ledgers print them.
const DefaultDateFormat = dateutils.DateLayoutLedgerShort

// Amount is an optional money value. It marshals to CSV with two decimals and to
// an empty field when absent.
type Amount struct {
	d *decimal.Decimal
}

// NewAmount wraps an optional value.
func NewAmount(d *decimal.Decimal) Amount {
	return Amount{d: d}
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (a Amount) MarshalCSV() (string, error) {
	return models.FormatOptional(a.d), nil
}

// Cell returns the value as a spreadsheet cell: a float, or nil when absent.
func (a Amount) Cell() interface{} {
	if a.d == nil {
		return nil
	}
	return models.Round2(*a.d).InexactFloat64()
}

// Quantity is an optional item quantity. Unlike Amount it keeps every decimal
// place the statement printed.
type Quantity struct {
	d *decimal.Decimal
}

// NewQuantity wraps an optional quantity.
func NewQuantity(d *decimal.Decimal) Quantity {
	return Quantity{d: d}
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (q Quantity) MarshalCSV() (string, error) {
	if q.d == nil {
		return "", nil
	}
	return q.d.String(), nil
}

func (q Quantity) Cell() interface{} {
	if q.d == nil {
		return nil
	}
	return q.d.InexactFloat64()
}

// RawRow is one classified item line.
type RawRow struct {
	Date         string   `csv:"date"`
	TxnType      string   `csv:"txn_type"`
	Category     string   `csv:"category"`
	HeaderAmount Amount   `csv:"header_amount"`
	ItemName     string   `csv:"item_name"`
	Qty          Quantity `csv:"qty"`
	Unit         string   `csv:"unit"`
	Rate         Amount   `csv:"rate"`
	Amount       Amount   `csv:"amount"`
	AmountSource string   `csv:"amount_source"`
	BillNo       string   `csv:"bill_no"`
	RawLine      string   `csv:"raw_line"`
	ParsingNotes string   `csv:"parsing_notes"`
}

func (r RawRow) Cells() []interface{} {
	return []interface{}{
		r.Date, r.TxnType, r.Category, r.HeaderAmount.Cell(), r.ItemName, r.Qty.Cell(), r.Unit,
		r.Rate.Cell(), r.Amount.Cell(), r.AmountSource, r.BillNo, r.RawLine, r.ParsingNotes,
	}
}

// AggregateRow is one (item, unit) total within a category.
type AggregateRow struct {
	ItemName    string   `csv:"item_name"`
	Unit        string   `csv:"unit"`
	TotalQty    Quantity `csv:"total_qty"`
	TotalAmount Amount   `csv:"total_amount"`
}

func (r AggregateRow) Cells() []interface{} {
	return []interface{}{r.ItemName, r.Unit, r.TotalQty.Cell(), r.TotalAmount.Cell()}
}

// PaymentRow is one payment received.
type PaymentRow struct {
	Date   string `csv:"date"`
	Amount Amount `csv:"amount"`
	Raw    string `csv:"raw"`
}

func (r PaymentRow) Cells() []interface{} {
	return []interface{}{r.Date, r.Amount.Cell(), r.Raw}
}

// TDSRow is one TDS deduction.
type TDSRow struct {
	Date   string `csv:"date"`
	Amount Amount `csv:"amount"`
	BillNo string `csv:"bill_no"`
	Raw    string `csv:"raw"`
}

func (r TDSRow) Cells() []interface{} {
	return []interface{}{r.Date, r.Amount.Cell(), r.BillNo, r.Raw}
}

// DiscountRow is one discount.
type DiscountRow struct {
	Date   string `csv:"date"`
	Amount Amount `csv:"amount"`
	Raw    string `csv:"raw"`
}

func (r DiscountRow) Cells() []interface{} {
	return []interface{}{r.Date, r.Amount.Cell(), r.Raw}
}

// MetricRow is one summary metric.
type MetricRow struct {
	Metric string `csv:"metric"`
	Value  Amount `csv:"value"`
}

func (r MetricRow) Cells() []interface{} {
	return []interface{}{r.Metric, r.Value.Cell()}
}

// Row is a typed table row that also renders as workbook cells.
type Row interface {
	Cells() []interface{}
}

// Table is one exported sheet. Rows holds the typed slice marshalled to CSV;
// Header and Cells hold the same content for the workbook.
type Table struct {
	Name   string
	Rows   interface{}
	Header []string
	Cells  [][]interface{}
}

// NewTable builds a table whose header is R's csv tags.
func NewTable[R Row](name string, rows []R) Table {
	if rows == nil {
		rows = []R{}
	}
	t := Table{Name: name, Rows: rows, Header: csvHeader[R]()}
	for _, r := range rows {
		t.Cells = append(t.Cells, r.Cells())
	}
	return t
}

// csvHeader returns the csv tags of R's fields, in declaration order.
func csvHeader[R any]() []string {
	typ := reflect.TypeOf((*R)(nil)).Elem()
	header := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag, _, _ := strings.Cut(typ.Field(i).Tag.Get("csv"), ",")
		if tag != "" && tag != "-" {
			header = append(header, tag)
		}
	}
	return header
}

// Tables converts a parsed statement into its export tables, in sheet order.
// The ambiguous_rows table is present only when some record carries notes.
func Tables(result *models.Result, dateFormat string) []Table {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	tables := []Table{
		NewTable(SheetRawRows, rawRows(result.Records, dateFormat)),
		NewTable(SheetEggs, aggregateRows(result.Aggregates.Eggs)),
		NewTable(SheetFeeds, aggregateRows(result.Aggregates.Feeds)),
		NewTable(SheetMedicines, aggregateRows(result.Aggregates.Medicines)),
		NewTable(SheetOtherItems, aggregateRows(result.Aggregates.Other)),
		NewTable(SheetPayments, paymentRows(result.Payments, dateFormat)),
		NewTable(SheetTDS, tdsRows(result.TDS, dateFormat)),
		NewTable(SheetDiscounts, discountRows(result.Discounts, dateFormat)),
		NewTable(SheetSummary, metricRows(result.Summary)),
	}
	if noted := result.NotedRecords(); len(noted) > 0 {
		tables = append(tables, NewTable(SheetAmbiguousRows, rawRows(noted, dateFormat)))
	}
	return tables
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rawRows(records []models.TransactionRecord, dateFormat string) []RawRow {
	rows := make([]RawRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, RawRow{
			Date:         dateutils.FormatLedgerDate(r.Date, dateFormat),
			TxnType:      string(r.TxnType),
			Category:     string(r.Category),
			HeaderAmount: NewAmount(r.HeaderAmount),
			ItemName:     r.ItemName,
			Qty:          NewQuantity(r.Qty),
			Unit:         r.UnitString(),
			Rate:         NewAmount(r.Rate),
			Amount:       NewAmount(models.DecimalPtr(r.Amount)),
			AmountSource: r.AmountSource,
			BillNo:       optionalString(r.BillNo),
			RawLine:      r.RawLine,
			ParsingNotes: r.NotesString(),
		})
	}
	return rows
}

func aggregateRows(aggs []models.AggregateRow) []AggregateRow {
	rows := make([]AggregateRow, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, AggregateRow{
			ItemName:    a.ItemName,
			Unit:        optionalString(a.Unit),
			TotalQty:    NewQuantity(models.DecimalPtr(a.TotalQty)),
			TotalAmount: NewAmount(models.DecimalPtr(a.TotalAmount)),
		})
	}
	return rows
}

func paymentRows(entries []models.PaymentEntry, dateFormat string) []PaymentRow {
	rows := make([]PaymentRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, PaymentRow{
			Date: dateutils.FormatLedgerDate(e.Date, dateFormat), Amount: NewAmount(models.DecimalPtr(e.Amount)), Raw: e.Raw,
		})
	}
	return rows
}

func tdsRows(entries []models.TDSEntry, dateFormat string) []TDSRow {
	rows := make([]TDSRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TDSRow{
			Date:   dateutils.FormatLedgerDate(e.Date, dateFormat),
			Amount: NewAmount(models.DecimalPtr(e.Amount)),
			BillNo: optionalString(e.BillNo),
			Raw:    e.Raw,
		})
	}
	return rows
}

func discountRows(entries []models.DiscountEntry, dateFormat string) []DiscountRow {
	rows := make([]DiscountRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, DiscountRow{
			Date: dateutils.FormatLedgerDate(e.Date, dateFormat), Amount: NewAmount(models.DecimalPtr(e.Amount)), Raw: e.Raw,
		})
	}
	return rows
}

func metricRows(s models.StatementSummary) []MetricRow {
	metrics := s.Metrics()
	rows := make([]MetricRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, MetricRow{Metric: m.Name, Value: NewAmount(m.Value)})
	}
	return rows
}
