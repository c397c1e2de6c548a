package parsererror

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors checked with errors.Is.
var (
	// ErrNoText means the extractor produced no usable lines.
	ErrNoText = errors.New("no text extracted")
	// ErrExtractorUnavailable means an extraction backend is not installed or cannot run.
	ErrExtractorUnavailable = errors.New("extractor unavailable")
)

// ParseError represents a value that could not be read from a ledger line.
type ParseError struct {
	Parser string
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: failed to parse %s='%s': %v",
			e.Parser, e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input or option that was rejected before processing.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents a failure to pull text out of a statement file.
type DataExtractionError struct {
	FilePath  string
	Extractor string
	Reason    string
	Err       error
}

func (e *DataExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data extraction failed in file '%s' using %s: %s: %v",
			e.FilePath, e.Extractor, e.Reason, e.Err)
	}
	return fmt.Sprintf("data extraction failed in file '%s' using %s: %s",
		e.FilePath, e.Extractor, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}

// ReconciliationError reports a statement whose computed net profit does not
// match the balance movement within tolerance.
type ReconciliationError struct {
	Expected   decimal.Decimal
	Computed   decimal.Decimal
	Difference decimal.Decimal
	Tolerance  decimal.Decimal
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed: expected net profit %s, computed %s (difference %s exceeds tolerance %s)",
		e.Expected.StringFixed(2), e.Computed.StringFixed(2), e.Difference.StringFixed(2), e.Tolerance.String())
}
