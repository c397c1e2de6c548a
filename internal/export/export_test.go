package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fjacquet/poultry-ledger/internal/ledgerparser"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/pdfparser"
)

const statement = `1-May-25 To Opening Balance 1,000
2-May-25 By Poultry Egg BILL NO 105 25,000
LARGE EGG 200 NOS 100 20,000
3-May-25 To Poultry Feed
LAYER MASH 100 KGS 90/KGS 9000
5-May-25 By Canara Bank 30,000
7-May-25 To TDS BILL NO 105 250
8-May-25 To Discount 150
31-May-25 To Closing Balance 2,000`

func parsedStatement(t *testing.T) *models.Result {
	t.Helper()
	return ledgerparser.New(ledgerparser.DefaultOptions(), nil).Parse(pdfparser.SplitLines(statement))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "parsed_25_05_MAY.xlsx"), OutputPath("in/25_05_MAY.pdf", "out", "xlsx"))
	assert.Equal(t, filepath.Join("in", "parsed_ledger.csv"), OutputPath("in/ledger.txt", "", "csv"))
}

func TestNew(t *testing.T) {
	x, err := New("xlsx", Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", x.Extension())

	c, err := New("CSV", Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", c.Extension())

	_, err = New("ods", Options{}, nil)
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	result := parsedStatement(t)
	tables := Tables(result, "")

	names := make([]string, 0, len(tables))
	for _, tb := range tables {
		names = append(names, tb.Name)
	}
	assert.Equal(t, []string{
		SheetRawRows, SheetEggs, SheetFeeds, SheetMedicines, SheetOtherItems,
		SheetPayments, SheetTDS, SheetDiscounts, SheetSummary, SheetAmbiguousRows,
	}, names)

	raw := tables[0]
	assert.Equal(t, []string{
		"date", "txn_type", "category", "header_amount", "item_name", "qty", "unit", "rate",
		"amount", "amount_source", "bill_no", "raw_line", "parsing_notes",
	}, raw.Header)
	require.Len(t, raw.Cells, 2)
	assert.Equal(t, "2-May-25", raw.Cells[0][0])
	assert.Equal(t, 20000.0, raw.Cells[0][8])
	assert.Nil(t, raw.Cells[0][7], "no rate on the egg line")

	rows := raw.Rows.([]RawRow)
	assert.Equal(t, "105", rows[0].BillNo)
	assert.Equal(t, models.NoteAmountSourceQtyRate, rows[1].ParsingNotes)

	medicines := tables[3]
	assert.Empty(t, medicines.Cells)
	assert.Equal(t, []string{"item_name", "unit", "total_qty", "total_amount"}, medicines.Header)

	summary := tables[8].Rows.([]MetricRow)
	require.Len(t, summary, 13)
	assert.Equal(t, "net_profit", summary[8].Metric)
	v, _ := summary[8].Value.MarshalCSV()
	assert.Equal(t, "10900.00", v)
}

func TestTables_NoAmbiguousRowsWithoutNotes(t *testing.T) {
	result := &models.Result{Records: []models.TransactionRecord{{ItemName: "LARGE EGG"}}}
	tables := Tables(result, DefaultDateFormat)

	assert.Len(t, tables, 9)
	assert.Equal(t, SheetSummary, tables[len(tables)-1].Name)
}

func TestAmount_MarshalCSV(t *testing.T) {
	v, err := NewAmount(nil).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	tds := parsedStatement(t).Summary.TotalTDS
	v, err = NewAmount(&tds).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "250.00", v)
}

func TestQuantity_KeepsPrecision(t *testing.T) {
	qty := decimal.RequireFromString("0.125")
	unit := "KGS"
	result := &models.Result{
		Records: []models.TransactionRecord{{ItemName: "VETMULIN", Qty: &qty, Unit: &unit}},
		Aggregates: models.CategoryAggregates{
			Feeds: []models.AggregateRow{{ItemName: "VETMULIN", Unit: &unit, TotalQty: qty}},
		},
	}
	tables := Tables(result, DefaultDateFormat)

	raw := tables[0].Rows.([]RawRow)
	require.Len(t, raw, 1)
	v, err := raw[0].Qty.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0.125", v)
	assert.Equal(t, 0.125, tables[0].Cells[0][5])

	feeds := tables[2].Rows.([]AggregateRow)
	require.Len(t, feeds, 1)
	v, err = feeds[0].TotalQty.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0.125", v)

	v, err = NewQuantity(nil).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestXLSXExporter_Export(t *testing.T) {
	logger := logging.NewMockLogger()
	dir := t.TempDir()
	exp := NewXLSXExporter(Options{DateFormat: DefaultDateFormat}, logger)

	path, err := exp.Export(parsedStatement(t), "ledgers/25_05_MAY.pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "parsed_25_05_MAY.xlsx"), path)
	assert.True(t, logger.HasEntry("INFO", "Workbook exported"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{
		SheetRawRows, SheetEggs, SheetFeeds, SheetMedicines, SheetOtherItems,
		SheetPayments, SheetTDS, SheetDiscounts, SheetSummary, SheetAmbiguousRows,
	}, f.GetSheetList())

	rows, err := f.GetRows(SheetEggs)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"item_name", "unit", "total_qty", "total_amount"}, rows[0])
	assert.Equal(t, []string{"LARGE EGG", "NOS", "200", "20000"}, rows[1])

	tds, err := f.GetRows(SheetTDS)
	require.NoError(t, err)
	require.Len(t, tds, 2)
	assert.Equal(t, "7-May-25", tds[1][0])
	assert.Equal(t, "105", tds[1][2])
}

func TestXLSXExporter_NilResult(t *testing.T) {
	err := NewXLSXExporter(Options{}, logging.NewMockLogger()).WriteFile(nil, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestCSVExporter_Export(t *testing.T) {
	dir := t.TempDir()
	exp := NewCSVExporter(Options{DateFormat: DefaultDateFormat, CSVDelimiter: ';'}, logging.NewMockLogger())

	path, err := exp.Export(parsedStatement(t), "25_05_MAY.pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "parsed_25_05_MAY_raw_rows.csv"), path)

	for _, sheet := range []string{SheetEggs, SheetSummary, SheetAmbiguousRows} {
		_, err := os.Stat(filepath.Join(dir, "parsed_25_05_MAY_"+sheet+".csv"))
		assert.NoError(t, err, sheet)
	}

	data, err := os.ReadFile(filepath.Join(dir, "parsed_25_05_MAY_payments.csv"))
	require.NoError(t, err)
	assert.Equal(t, "date;amount;raw\n5-May-25;30000.00;5-May-25 By Canara Bank 30,000\n", string(data))
}

func TestWriteCSV_EmptyTableHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV([]DiscountRow{}, path, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,amount,raw\n", string(data))
}

func TestWriteCSV_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agg.csv")
	require.NoError(t, WriteCSV(aggregateRows(parsedStatement(t).Aggregates.Feeds), path, ','))

	type feedLine struct {
		ItemName    string `csv:"item_name"`
		Unit        string `csv:"unit"`
		TotalAmount string `csv:"total_amount"`
	}
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var lines []feedLine
	require.NoError(t, gocsv.UnmarshalFile(f, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, feedLine{ItemName: "LAYER MASH", Unit: "KGS", TotalAmount: "9000.00"}, lines[0])
}
