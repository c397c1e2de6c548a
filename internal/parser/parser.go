package parser

import (
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// StatementParser turns one statement file into a parsed result.
// Implementations should return custom error types (e.g., InvalidFormatError,
// DataExtractionError) for specific parsing failures.
type StatementParser interface {
	ParseFile(path string) (*models.Result, error)
}

// Validator checks whether a file looks like something the parser can read.
type Validator interface {
	ValidateFormat(path string) (bool, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be replaced.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser is the complete parser surface used by the CLI and batch driver.
type FullParser interface {
	StatementParser
	Validator
	LoggerConfigurable
}
