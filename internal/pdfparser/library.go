package pdfparser

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parsererror"
)

// LibraryExtractor reads PDF pages in-process with github.com/ledongthuc/pdf.
type LibraryExtractor struct{}

// NewLibraryExtractor creates a LibraryExtractor.
func NewLibraryExtractor() *LibraryExtractor {
	return &LibraryExtractor{}
}

// Name returns "library".
func (e *LibraryExtractor) Name() string {
	return "library"
}

// ExtractLines reads every page, row by row, falling back to the page's plain
// text when row grouping yields nothing.
func (e *LibraryExtractor) ExtractLines(path string) (lines []models.RawLine, err error) {
	// The library panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = &parsererror.DataExtractionError{
				FilePath:  path,
				Extractor: e.Name(),
				Reason:    "PDF library crashed",
				Err:       fmt.Errorf("%v", r),
			}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &parsererror.DataExtractionError{
			FilePath: path, Extractor: e.Name(), Reason: "cannot open PDF", Err: err,
		}
	}
	defer func() {
		_ = f.Close()
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, &parsererror.DataExtractionError{
			FilePath: path, Extractor: e.Name(), Reason: "PDF has no pages", Err: parsererror.ErrNoText,
		}
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := pageRows(page)
		if strings.TrimSpace(text) == "" {
			if plain, perr := page.GetPlainText(nil); perr == nil {
				text = plain
			}
		}
		pages = append(pages, text)
	}

	lines = SplitLines(pages...)
	if !hasText(lines) {
		return nil, &parsererror.DataExtractionError{
			FilePath: path, Extractor: e.Name(), Reason: "no text on any page", Err: parsererror.ErrNoText,
		}
	}
	return lines, nil
}

// pageRows joins the words of each text row with single spaces.
func pageRows(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
