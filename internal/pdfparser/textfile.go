package pdfparser

import (
	"fmt"
	"os"

	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parsererror"
)

// TextFileExtractor reads statements that were already converted to text.
type TextFileExtractor struct{}

// NewTextFileExtractor creates a TextFileExtractor.
func NewTextFileExtractor() *TextFileExtractor {
	return &TextFileExtractor{}
}

// ExtractLines reads the file and splits it into lines.
func (e *TextFileExtractor) ExtractLines(path string) ([]models.RawLine, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error reading text file: %w", err)
	}
	lines := SplitLines(string(data))
	if !hasText(lines) {
		return nil, &parsererror.DataExtractionError{
			FilePath:  path,
			Extractor: e.Name(),
			Reason:    "file is empty",
			Err:       parsererror.ErrNoText,
		}
	}
	return lines, nil
}

// Name returns "text".
func (e *TextFileExtractor) Name() string {
	return "text"
}
