// Package container provides dependency injection for the poultry-ledger application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/poultry-ledger/internal/batch"
	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/config"
	"fjacquet/poultry-ledger/internal/export"
	"fjacquet/poultry-ledger/internal/ledgerparser"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/pdfparser"
	"fjacquet/poultry-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.RulesLoader
	rules     categorizer.Rules
	parser    *ledgerparser.Parser
	adapter   *ledgerparser.Adapter
	exporter  export.Exporter
	processor *batch.Processor
}

// Option customizes a Container before wiring.
type Option func(*settings)

type settings struct {
	logger    logging.Logger
	store     store.RulesLoader
	extractor pdfparser.LineExtractor
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithRulesLoader replaces the YAML rules store.
func WithRulesLoader(loader store.RulesLoader) Option {
	return func(s *settings) { s.store = loader }
}

// WithExtractor replaces the PDF extractor chain.
func WithExtractor(extractor pdfparser.LineExtractor) Option {
	return func(s *settings) { s.extractor = extractor }
}

// ParserOptions maps the parsing and classifier settings to parser options.
func ParserOptions(cfg *config.Config) ledgerparser.Options {
	return ledgerparser.Options{
		AutoCorrect:       cfg.Parsing.AutoCorrect,
		ParsingNotes:      cfg.Parsing.ParsingNotes,
		PreferQtyRate:     cfg.Parsing.PreferQtyRate,
		NormalizeEggNames: cfg.Classifier.NormalizeEggNames,
		PaymentKeywords:   cfg.Parsing.PaymentKeywords,
	}
}

// ExportOptions maps the export settings to exporter options.
func ExportOptions(cfg *config.Config) export.Options {
	opts := export.Options{DateFormat: cfg.Export.DateFormat}
	if d := []rune(cfg.Export.CSVDelimiter); len(d) > 0 {
		opts.CSVDelimiter = d[0]
	}
	return opts
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	// Create logger first as it's needed by other components
	logger := s.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	rulesStore := s.store
	if rulesStore == nil {
		rulesStore = store.NewRulesStore(cfg.Classifier.RulesFile, logger)
	}
	rules, err := rulesStore.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load classification rules: %w", err)
	}

	p := ledgerparser.NewWithRules(rules, ParserOptions(cfg), logger)
	adapter := ledgerparser.NewAdapter(logger, s.extractor, p)

	exporter, err := export.New(cfg.Export.Format, ExportOptions(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	processor := batch.NewProcessor(adapter, exporter, logger,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithPattern(cfg.Batch.Pattern),
		batch.WithTolerance(cfg.ToleranceDecimal()))

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldFormat, Value: exporter.Extension()},
		logging.Field{Key: "auto_correct", Value: cfg.Parsing.AutoCorrect},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Batch.Workers})

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     rulesStore,
		rules:     rules,
		parser:    p,
		adapter:   adapter,
		exporter:  exporter,
		processor: processor,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRules returns the classification rules the parser was built with.
func (c *Container) GetRules() categorizer.Rules {
	return c.rules
}

// GetParser returns the core statement parser.
func (c *Container) GetParser() *ledgerparser.Parser {
	return c.parser
}

// GetAdapter returns the file-level parser.
func (c *Container) GetAdapter() *ledgerparser.Adapter {
	return c.adapter
}

// GetExporter returns the configured exporter.
func (c *Container) GetExporter() export.Exporter {
	return c.exporter
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
