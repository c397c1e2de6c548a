package pdfparser

import (
	"errors"
	"fmt"

	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parsererror"
)

// FallbackExtractor tries extractors in order and returns the first non-empty result.
type FallbackExtractor struct {
	extractors []LineExtractor
	logger     logging.Logger
}

// NewFallbackExtractor creates a FallbackExtractor over extractors.
func NewFallbackExtractor(logger logging.Logger, extractors ...LineExtractor) *FallbackExtractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &FallbackExtractor{extractors: extractors, logger: logger}
}

// NewDefaultPDFExtractor reads with the PDF library first and falls back to pdftotext.
func NewDefaultPDFExtractor(logger logging.Logger) *FallbackExtractor {
	return NewFallbackExtractor(logger, NewLibraryExtractor(), NewPdftotextExtractor())
}

// Name returns "fallback".
func (f *FallbackExtractor) Name() string {
	return "fallback"
}

// ExtractLines returns the lines of the first extractor that produces text.
// When all fail, the returned error joins every attempt's error.
func (f *FallbackExtractor) ExtractLines(path string) ([]models.RawLine, error) {
	var errs []error
	for _, e := range f.extractors {
		lines, err := e.ExtractLines(path)
		if err == nil && hasText(lines) {
			f.logger.Debug("Text extracted",
				logging.Field{Key: logging.FieldExtractor, Value: e.Name()},
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldCount, Value: len(lines)})
			return lines, nil
		}
		if err == nil {
			err = fmt.Errorf("%s: %w", e.Name(), parsererror.ErrNoText)
		}
		f.logger.WithError(err).Warn("Extractor failed, trying next",
			logging.Field{Key: logging.FieldExtractor, Value: e.Name()},
			logging.Field{Key: logging.FieldFile, Value: path})
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		errs = append(errs, parsererror.ErrNoText)
	}
	return nil, &parsererror.DataExtractionError{
		FilePath:  path,
		Extractor: f.Name(),
		Reason:    "all extractors failed",
		Err:       errors.Join(errs...),
	}
}
