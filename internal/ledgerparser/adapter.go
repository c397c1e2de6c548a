package ledgerparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parser"
	"fjacquet/poultry-ledger/internal/parsererror"
	"fjacquet/poultry-ledger/internal/pdfparser"
)

const expectedFormat = "dated ledger statement"

// Adapter implements parser.FullParser for ledger statements stored as PDF or text.
type Adapter struct {
	parser.BaseParser
	pdfExtractor  pdfparser.LineExtractor
	textExtractor pdfparser.LineExtractor
	parser        *Parser
}

// NewAdapter creates a new adapter with dependency injection. A nil extractor
// selects the library-then-pdftotext chain; a nil parser uses DefaultOptions.
func NewAdapter(logger logging.Logger, extractor pdfparser.LineExtractor, p *Parser) *Adapter {
	base := parser.NewBaseParser(logger)
	if extractor == nil {
		extractor = pdfparser.NewDefaultPDFExtractor(base.GetLogger())
	}
	if p == nil {
		p = New(DefaultOptions(), base.GetLogger())
	}
	return &Adapter{
		BaseParser:    base,
		pdfExtractor:  extractor,
		textExtractor: pdfparser.NewTextFileExtractor(),
		parser:        p,
	}
}

// Parser returns the core parser.
func (a *Adapter) Parser() *Parser {
	return a.parser
}

func (a *Adapter) extractorFor(path string) pdfparser.LineExtractor {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return a.textExtractor
	}
	return a.pdfExtractor
}

// ParseFile extracts the statement's lines and parses them.
func (a *Adapter) ParseFile(path string) (*models.Result, error) {
	extractor := a.extractorFor(path)
	a.GetLogger().Info("Parsing statement",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldExtractor, Value: extractor.Name()})

	lines, err := extractor.ExtractLines(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: expectedFormat,
			Msg:            "text extraction failed",
			Err:            err,
		}
	}

	result := a.parser.Parse(lines)
	a.LogResult(path, result)
	return result, nil
}

// ValidateFormat reports whether the file yields at least one dated header.
// A missing file is an error; an unreadable or header-less file is simply invalid.
func (a *Adapter) ValidateFormat(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("error accessing file: %w", err)
	}

	lines, err := a.extractorFor(path).ExtractLines(path)
	if err != nil {
		a.GetLogger().WithError(err).Warn("Statement validation failed",
			logging.Field{Key: logging.FieldFile, Value: path})
		return false, nil
	}
	for _, l := range lines {
		if _, ok := ParseHeader(l, a.parser.opts.PaymentKeywords); ok {
			return true, nil
		}
	}
	return false, nil
}
