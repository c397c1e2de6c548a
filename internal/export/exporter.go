// Package export writes parsed statements as an Excel workbook or a set of CSV files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// Exporter writes one parsed statement.
type Exporter interface {
	// Export writes result for the statement at inputPath into outputDir and
	// returns the path of the main file written.
	Export(result *models.Result, inputPath, outputDir string) (string, error)

	// Extension is the file extension of the main output, without the dot.
	Extension() string
}

// Options configure both exporters.
type Options struct {
	DateFormat   string
	CSVDelimiter rune
}

// New returns the exporter for format ("xlsx" or "csv").
func New(format string, opts Options, logger logging.Logger) (Exporter, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	if opts.CSVDelimiter == 0 {
		opts.CSVDelimiter = ','
	}
	switch strings.ToLower(format) {
	case "", "xlsx":
		return NewXLSXExporter(opts, logger), nil
	case "csv":
		return NewCSVExporter(opts, logger), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// OutputPath returns outputDir/parsed_<input stem>.<ext>. An empty outputDir
// means the input's directory.
func OutputPath(inputPath, outputDir, ext string) string {
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, fmt.Sprintf("parsed_%s.%s", stem, ext))
}
