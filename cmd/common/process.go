// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"fjacquet/poultry-ledger/internal/currencyutils"
	"fjacquet/poultry-ledger/internal/export"
	"fjacquet/poultry-ledger/internal/fileutils"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parser"
	"fjacquet/poultry-ledger/internal/parsererror"
	"fjacquet/poultry-ledger/internal/reconciler"
	"fjacquet/poultry-ledger/internal/validation"

	"github.com/shopspring/decimal"
)

// Outcome is what processing one statement produced.
type Outcome struct {
	Result         *models.Result
	OutputPath     string
	// Reconciliation is non-nil when the statement does not balance within tolerance.
	Reconciliation *parsererror.ReconciliationError
}

// ProcessFile parses one statement, exports it to outputDir and checks that
// it reconciles. An empty outputDir writes next to the input file.
// A reconciliation difference is reported in the outcome, not as an error.
func ProcessFile(p parser.FullParser, exporter export.Exporter, inputFile, outputDir string, tolerance decimal.Decimal, log logging.Logger) (*Outcome, error) {
	p.SetLogger(log)

	if err := validation.IsValidStatementFile(inputFile); err != nil {
		return nil, err
	}
	if outputDir == "" {
		outputDir = filepath.Dir(inputFile)
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	result, err := p.ParseFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", inputFile, err)
	}

	outPath, err := exporter.Export(result, inputFile, outputDir)
	if err != nil {
		return nil, fmt.Errorf("error exporting %s: %w", inputFile, err)
	}
	log.Info("Export completed", logging.Field{Key: logging.FieldOutputFile, Value: outPath})

	outcome := &Outcome{Result: result, OutputPath: outPath}
	var recErr *parsererror.ReconciliationError
	if err := reconciler.Check(result.Summary, tolerance); errors.As(err, &recErr) {
		outcome.Reconciliation = recErr
		log.WithError(err).Warn("Statement does not reconcile",
			logging.Field{Key: logging.FieldFile, Value: inputFile})
	}
	return outcome, nil
}

// PrintSummary writes the statement summary with Indian digit grouping.
func PrintSummary(w io.Writer, s models.StatementSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, m := range s.Metrics() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", m.Name, currencyutils.FormatOptionalIndian(m.Value)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
