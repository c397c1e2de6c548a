package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fjacquet/poultry-ledger/internal/batch"
	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/config"
	"fjacquet/poultry-ledger/internal/container"
	"fjacquet/poultry-ledger/internal/export"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/pdfparser"
	"fjacquet/poultry-ledger/internal/reconciler"
	"fjacquet/poultry-ledger/internal/store"
)

const mayStatement = `PRADEEP POULTRY FARM
LEDGER ACCOUNT 1-May-25 TO 31-May-25
BILLNO 101
CHICK FEED 2 KGS 40/KGS 80
1-May-25 To Opening Balance 1,00,000.00
2-May-25 By Poultry Egg BILL NO 105 25,000
LARGE EGG 200 NOS 100 20,000
MEDIUM EGG 100 NOS 50 5000
3-May-25 To Poultry Feed 9,000
LAYER MASH 100 KGS 90/KGS 9000
LARGE 10 NOS 10 100
VETMULIN 1 KGS 500/KGS 500
5-May-25 By Canara Bank 30,000
7-May-25 To TDS BILL NO 105 250
10-May-25 Journal
To TDS 100 BILL NO 106
Discount allowed 150
31-May-25 To Closing Balance 1,20,000.00`

const juneStatement = `1-Jun-25 To Opening Balance 1,20,000.00
2-Jun-25 By Poultry Egg 10,000
SMALL EGG 200 NOS 50 10000
30-Jun-25 To Closing Balance 1,30,000.00`

// summaryLine reads back the columns of batch_summary.csv the checks need.
type summaryLine struct {
	Month     string `csv:"month"`
	NetProfit string `csv:"net_profit"`
	File      string `csv:"file"`
	Error     string `csv:"error"`
}

func newContainer(t *testing.T, mutate func(*config.Config)) *container.Container {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithRulesLoader(&store.MockRulesStore{Rules: categorizer.DefaultRules()}),
		container.WithExtractor(pdfparser.NewMockExtractor("", errors.New("no pdf in tests"))))
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestStatementToWorkbook(t *testing.T) {
	c := newContainer(t, nil)
	input := writeFile(t, t.TempDir(), "25_05_MAY.txt", mayStatement)
	outDir := t.TempDir()

	result, err := c.GetAdapter().ParseFile(input)
	require.NoError(t, err)
	assert.Equal(t, "15120.00", result.Summary.NetProfit.StringFixed(2))
	assert.Equal(t, "34880.00", result.Summary.ValidationDifference.StringFixed(2))

	assert.Error(t, reconciler.Check(result.Summary, c.GetConfig().ToleranceDecimal()))

	path, err := c.GetExporter().Export(result, input, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "parsed_25_05_MAY.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Contains(t, f.GetSheetList(), export.SheetAmbiguousRows)

	eggs, err := f.GetRows(export.SheetEggs)
	require.NoError(t, err)
	require.Len(t, eggs, 3)
	assert.Equal(t, "LARGE EGG", eggs[1][0])
	assert.Equal(t, "MEDIUM EGG", eggs[2][0])

	raw, err := f.GetRows(export.SheetRawRows)
	require.NoError(t, err)
	assert.Len(t, raw, 7, "header plus six item records")

	summary, err := f.GetRows(export.SheetSummary)
	require.NoError(t, err)
	var netProfit string
	for _, row := range summary {
		if len(row) == 2 && row[0] == "net_profit" {
			netProfit = row[1]
		}
	}
	assert.Equal(t, "15120", netProfit)
}

func TestAutoCorrectChangesProfit(t *testing.T) {
	input := writeFile(t, t.TempDir(), "25_05_MAY.txt", mayStatement)

	plain, err := newContainer(t, nil).GetAdapter().ParseFile(input)
	require.NoError(t, err)
	corrected, err := newContainer(t, func(c *config.Config) { c.Parsing.AutoCorrect = true }).GetAdapter().ParseFile(input)
	require.NoError(t, err)

	assert.Equal(t, "200.00", corrected.Summary.NetProfit.Sub(plain.Summary.NetProfit).StringFixed(2))
}

func TestBatchDirectoryToSummary(t *testing.T) {
	c := newContainer(t, func(c *config.Config) {
		c.Export.Format = config.FormatCSV
		c.Batch.Pattern = "*.txt"
		c.Batch.Workers = 2
	})
	in := t.TempDir()
	writeFile(t, in, "25_06_JUN.txt", juneStatement)
	writeFile(t, in, "25_05_MAY.txt", mayStatement)
	writeFile(t, in, "25_07_JUL.txt", "")
	out := filepath.Join(t.TempDir(), "parsed")

	months, err := c.GetProcessor().ProcessDir(context.Background(), in, out)
	require.NoError(t, err)
	require.Len(t, months, 3)

	totals := batch.ComputeYearlyTotals(months)
	assert.Equal(t, 2, totals.Months)
	assert.Equal(t, "25120.00", totals.NetProfit.StringFixed(2))
	assert.Equal(t, "100000.00", totals.OpeningBalance.StringFixed(2))
	assert.Equal(t, "130000.00", totals.ClosingBalance.StringFixed(2))

	summaryPath := filepath.Join(out, batch.SummaryFileName)
	require.NoError(t, batch.WriteSummary(summaryPath, months, totals, ','))

	file, err := os.Open(summaryPath)
	require.NoError(t, err)
	defer file.Close()

	var lines []summaryLine
	require.NoError(t, gocsv.UnmarshalFile(file, &lines))
	require.Len(t, lines, 4)
	assert.Equal(t, summaryLine{Month: "May 2025", NetProfit: "15120.00", File: "25_05_MAY.txt"}, lines[0])
	assert.Equal(t, "June 2025", lines[1].Month)
	assert.Equal(t, "10000.00", lines[1].NetProfit)
	assert.Equal(t, "July 2025", lines[2].Month)
	assert.NotEmpty(t, lines[2].Error)
	assert.True(t, strings.HasPrefix(lines[3].Month, "TOTAL (2 months)"))
	assert.Equal(t, "25120.00", lines[3].NetProfit)
}
