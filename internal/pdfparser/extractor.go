// Package pdfparser extracts the text lines of ledger statements from PDF files
// and plain-text dumps.
package pdfparser

import (
	"strings"

	"fjacquet/poultry-ledger/internal/models"
)

// LineExtractor defines the interface for extracting ordered text lines from a statement file.
// This interface allows for dependency injection and makes the ledger parser testable
// by providing different implementations for production and testing.
type LineExtractor interface {
	// ExtractLines returns the lines of the file in document order, indexed from 0.
	ExtractLines(path string) ([]models.RawLine, error)

	// Name identifies the extractor in logs and errors.
	Name() string
}

// SplitLines splits page texts into right-trimmed, indexed lines. Indices run
// continuously across pages.
func SplitLines(pages ...string) []models.RawLine {
	var lines []models.RawLine
	for _, page := range pages {
		page = strings.ReplaceAll(page, "\r\n", "\n")
		for _, l := range strings.Split(page, "\n") {
			lines = append(lines, models.RawLine{
				Index: len(lines),
				Text:  strings.TrimRight(l, " \t\r\f"),
			})
		}
	}
	return trimTrailingBlank(lines)
}

func trimTrailingBlank(lines []models.RawLine) []models.RawLine {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1].Text) == "" {
		end--
	}
	return lines[:end]
}

func hasText(lines []models.RawLine) bool {
	for _, l := range lines {
		if strings.TrimSpace(l.Text) != "" {
			return true
		}
	}
	return false
}

// MockExtractor implements LineExtractor for testing purposes.
// It returns predefined lines instead of reading the file.
type MockExtractor struct {
	MockLines []models.RawLine
	MockErr   error
	// Calls records the paths passed to ExtractLines.
	Calls []string
}

// NewMockExtractor creates a MockExtractor returning text split into lines, or err.
func NewMockExtractor(text string, err error) *MockExtractor {
	m := &MockExtractor{MockErr: err}
	if text != "" {
		m.MockLines = SplitLines(text)
	}
	return m
}

// ExtractLines returns the predefined lines or error.
func (m *MockExtractor) ExtractLines(path string) ([]models.RawLine, error) {
	m.Calls = append(m.Calls, path)
	if m.MockErr != nil {
		return nil, m.MockErr
	}
	out := make([]models.RawLine, len(m.MockLines))
	copy(out, m.MockLines)
	return out, nil
}

// Name returns "mock".
func (m *MockExtractor) Name() string {
	return "mock"
}
