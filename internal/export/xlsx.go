package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// XLSXExporter writes every table as a sheet of one workbook.
type XLSXExporter struct {
	opts   Options
	logger logging.Logger
}

// NewXLSXExporter creates an XLSXExporter.
func NewXLSXExporter(opts Options, logger logging.Logger) *XLSXExporter {
	return &XLSXExporter{opts: opts, logger: logger}
}

// Extension returns "xlsx".
func (e *XLSXExporter) Extension() string {
	return "xlsx"
}

// Export writes parsed_<stem>.xlsx.
func (e *XLSXExporter) Export(result *models.Result, inputPath, outputDir string) (string, error) {
	outPath := OutputPath(inputPath, outputDir, e.Extension())
	if err := e.WriteFile(result, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteFile writes the workbook to path.
func (e *XLSXExporter) WriteFile(result *models.Result, path string) error {
	if result == nil {
		return fmt.Errorf("cannot export a nil result")
	}
	return WriteWorkbook(path, Tables(result, e.opts.DateFormat), e.logger)
}

// WriteWorkbook writes each table as a sheet, in order, with a bold header row.
// The first table reuses the default sheet so the workbook opens on it.
func WriteWorkbook(path string, tables []Table, logger logging.Logger) error {
	if len(tables) == 0 {
		return fmt.Errorf("cannot write a workbook without sheets")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return fmt.Errorf("error naming sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("error creating sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	logger.Info("Workbook exported",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: "sheets", Value: len(tables)})
	return nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("error writing header of sheet %s: %w", t.Name, err)
	}
	if err := f.SetRowStyle(t.Name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("error styling header of sheet %s: %w", t.Name, err)
	}
	for i, cells := range t.Cells {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := cells
		if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d of sheet %s: %w", i+2, t.Name, err)
		}
	}
	return nil
}
