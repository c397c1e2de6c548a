// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// BaseParser provides common functionality for all parser implementations.
// It implements the LoggerConfigurable interface.
//
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", logging.FormatText)
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// LogResult writes the counts of a parsed statement at info level.
func (b *BaseParser) LogResult(file string, result *models.Result) {
	if result == nil {
		return
	}
	b.logger.Info("Statement parsed",
		logging.Field{Key: logging.FieldFile, Value: file},
		logging.Field{Key: "records", Value: len(result.Records)},
		logging.Field{Key: "payments", Value: len(result.Payments)},
		logging.Field{Key: "tds", Value: len(result.TDS)},
		logging.Field{Key: "discounts", Value: len(result.Discounts)},
		logging.Field{Key: "net_profit", Value: result.Summary.NetProfit.StringFixed(models.MoneyPlaces)})
}
