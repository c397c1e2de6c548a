// Package batch handles batch processing of statement directories
package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"fjacquet/poultry-ledger/cmd/root"
	"fjacquet/poultry-ledger/internal/batch"
	"fjacquet/poultry-ledger/internal/config"
	"fjacquet/poultry-ledger/internal/currencyutils"
	"fjacquet/poultry-ledger/internal/fileutils"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/validation"

	"github.com/spf13/cobra"
)

// Flags holds the batch command's overrides of the loaded configuration.
type Flags struct {
	Workers     int
	Pattern     string
	Format      string
	AutoCorrect bool
}

var flags Flags

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process ledger statements from a directory",
	Long: `Batch process every statement of an input directory and write the parsed
workbooks, plus a batch_summary.csv with one row per month and a yearly total,
to the output directory. With the xlsx format a batch_summary.xlsx workbook is
written as well. Months are read from file names like 25_01_JAN.pdf.

Example:
  poultry-ledger batch -i statements/ -o parsed/`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Number of statements parsed concurrently (default from config)")
	Cmd.Flags().StringVar(&flags.Pattern, "pattern", "", "Glob pattern of statement files (default from config)")
	Cmd.Flags().StringVar(&flags.Format, "format", "", "Export format: xlsx or csv (default from config)")
	Cmd.Flags().BoolVar(&flags.AutoCorrect, "auto-correct", false, "Treat bare LARGE/SMALL/MEDIUM counted in NOS as eggs")
}

// ApplyFlags overrides cfg with the flags the user actually set.
func ApplyFlags(cmd *cobra.Command, cfg *config.Config, f Flags) error {
	if cmd.Flags().Changed("workers") {
		if f.Workers < 1 {
			return fmt.Errorf("workers must be at least 1, got: %d", f.Workers)
		}
		cfg.Batch.Workers = f.Workers
	}
	if cmd.Flags().Changed("pattern") {
		if _, err := filepath.Match(f.Pattern, ""); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", f.Pattern, err)
		}
		cfg.Batch.Pattern = f.Pattern
	}
	if cmd.Flags().Changed("format") {
		if err := validation.IsValidOutputFormat(f.Format); err != nil {
			return err
		}
		cfg.Export.Format = strings.ToLower(f.Format)
	}
	if cmd.Flags().Changed("auto-correct") {
		cfg.Parsing.AutoCorrect = f.AutoCorrect
	}
	return nil
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if err := validation.IsValidInputDirectory(inputDir); err != nil {
		return err
	}
	if outputDir == "" {
		return fmt.Errorf("output directory must be specified")
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return err
	}

	cfg := root.GetConfig()
	if err := ApplyFlags(cmd, cfg, flags); err != nil {
		return err
	}
	appContainer, err := root.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer appContainer.Close()

	logger := appContainer.GetLogger()
	logger.Info("Batch command called",
		logging.Field{Key: logging.FieldInputFile, Value: inputDir},
		logging.Field{Key: logging.FieldOutputFile, Value: outputDir})

	months, err := appContainer.GetProcessor().ProcessDir(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("error during batch processing: %w", err)
	}

	totals := batch.ComputeYearlyTotals(months)
	summaryPath := filepath.Join(outputDir, batch.SummaryFileName)
	delimiter := ','
	if d := []rune(cfg.Export.CSVDelimiter); len(d) > 0 {
		delimiter = d[0]
	}
	if err := batch.WriteSummary(summaryPath, months, totals, delimiter); err != nil {
		return err
	}
	logger.Info("Batch summary written", logging.Field{Key: logging.FieldOutputFile, Value: summaryPath})

	if cfg.Export.Format == "xlsx" {
		workbookPath := filepath.Join(outputDir, batch.SummaryWorkbookFileName)
		if err := batch.WriteSummaryWorkbook(workbookPath, months, totals, logger); err != nil {
			return err
		}
	}

	return PrintMonths(cmd.OutOrStdout(), months, totals)
}

// PrintMonths writes one line per month and the yearly totals.
func PrintMonths(w io.Writer, months []batch.MonthlySummary, totals batch.YearlyTotals) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tFILE\tNET PROFIT\tDIFFERENCE\tSTATUS")
	failed := 0
	for _, m := range months {
		month := m.Period.String()
		if month == "" {
			month = "-"
		}
		if !m.OK() {
			failed++
			fmt.Fprintf(tw, "%s\t%s\t-\t-\tERROR: %v\n", month, filepath.Base(m.File), m.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tOK\n", month, filepath.Base(m.File),
			currencyutils.FormatIndian(m.Summary.NetProfit),
			currencyutils.FormatOptionalIndian(m.Summary.ValidationDifference))
	}
	fmt.Fprintf(tw, "TOTAL (%d months)\t\t%s\t\t\n", totals.Months, currencyutils.FormatIndian(totals.NetProfit))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nEggs %s | Feeds %s | Medicines %s | Other %s | Payments %s | TDS %s | Discounts %s\n",
		currencyutils.FormatIndian(totals.TotalEggs),
		currencyutils.FormatIndian(totals.TotalFeeds),
		currencyutils.FormatIndian(totals.TotalMedicines),
		currencyutils.FormatIndian(totals.TotalOtherItems),
		currencyutils.FormatIndian(totals.TotalPayments),
		currencyutils.FormatIndian(totals.TotalTDS),
		currencyutils.FormatIndian(totals.TotalDiscounts))
	if err != nil {
		return err
	}
	if failed > 0 {
		_, err = fmt.Fprintf(w, "%d statement(s) failed\n", failed)
	}
	return err
}
