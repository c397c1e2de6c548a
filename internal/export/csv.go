package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// CSVExporter writes every table as <base>_<sheet>.csv.
type CSVExporter struct {
	opts   Options
	logger logging.Logger
}

// NewCSVExporter creates a CSVExporter.
func NewCSVExporter(opts Options, logger logging.Logger) *CSVExporter {
	return &CSVExporter{opts: opts, logger: logger}
}

// Extension returns "csv".
func (e *CSVExporter) Extension() string {
	return "csv"
}

// Export writes parsed_<stem>_<sheet>.csv for every table and returns the raw_rows file.
func (e *CSVExporter) Export(result *models.Result, inputPath, outputDir string) (string, error) {
	base := strings.TrimSuffix(OutputPath(inputPath, outputDir, e.Extension()), ".csv")
	files, err := e.WriteFiles(result, base)
	if err != nil {
		return "", err
	}
	return files[0], nil
}

// WriteFiles writes one CSV per table as <base>_<table>.csv and returns the paths written.
func (e *CSVExporter) WriteFiles(result *models.Result, base string) ([]string, error) {
	if result == nil {
		return nil, fmt.Errorf("cannot export a nil result")
	}
	if err := os.MkdirAll(filepath.Dir(base), models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	tables := Tables(result, e.opts.DateFormat)
	files := make([]string, 0, len(tables))
	for _, t := range tables {
		path := fmt.Sprintf("%s_%s.csv", base, t.Name)
		if err := WriteCSV(t.Rows, path, e.opts.CSVDelimiter); err != nil {
			return files, fmt.Errorf("error writing %s: %w", t.Name, err)
		}
		files = append(files, path)
	}

	e.logger.Info("CSV files exported",
		logging.Field{Key: logging.FieldOutputFile, Value: base},
		logging.Field{Key: logging.FieldCount, Value: len(files)})
	return files, nil
}

// WriteCSV marshals a slice of csv-tagged structs to path with the given delimiter.
func WriteCSV(rows interface{}, path string, delimiter rune) error {
	file, err := os.Create(path) // #nosec G304 -- output path built from user-provided directory
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		_ = file.Close()
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return file.Close()
}
