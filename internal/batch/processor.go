package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fjacquet/poultry-ledger/internal/export"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parser"
	"fjacquet/poultry-ledger/internal/reconciler"
)

// DefaultWorkers bounds the number of statements parsed at once.
const DefaultWorkers = 4

// Processor parses and exports every statement of a directory.
type Processor struct {
	parser    parser.StatementParser
	exporter  export.Exporter
	logger    logging.Logger
	workers   int
	pattern   string
	tolerance decimal.Decimal
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the parallelism; values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithPattern sets the glob matched against file names in the input directory.
func WithPattern(pattern string) Option {
	return func(p *Processor) {
		if pattern != "" {
			p.pattern = pattern
		}
	}
}

// WithTolerance sets the validation difference above which a month is flagged.
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(p *Processor) {
		p.tolerance = tolerance
	}
}

// NewProcessor creates a Processor. The parser must be safe for concurrent use.
func NewProcessor(p parser.StatementParser, exporter export.Exporter, logger logging.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	proc := &Processor{
		parser:    p,
		exporter:  exporter,
		logger:    logger,
		workers:   DefaultWorkers,
		pattern:   "*.pdf",
		tolerance: reconciler.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(proc)
	}
	return proc
}

// FindStatements returns the files of dir matching the processor's pattern, sorted by name.
func (p *Processor) FindStatements(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", dir)
	}
	files, err := filepath.Glob(filepath.Join(dir, p.pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", p.pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// ProcessDir parses and exports every matching statement of inputDir into
// outputDir. A failing statement is reported in its MonthlySummary and does
// not stop the others. Results are ordered by period, then file name.
func (p *Processor) ProcessDir(ctx context.Context, inputDir, outputDir string) ([]MonthlySummary, error) {
	files, err := p.FindStatements(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %s found in %s", p.pattern, inputDir)
	}
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	start := time.Now()
	p.logger.Info("Batch started",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldWorkers, Value: p.workers})

	results := make([]MonthlySummary, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processFile(file, outputDir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Period, results[j].Period
		if a.Before(b) || b.Before(a) {
			return a.Before(b)
		}
		return results[i].File < results[j].File
	})

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	p.logger.Info("Batch finished",
		logging.Field{Key: logging.FieldCount, Value: len(results)},
		logging.Field{Key: "failed", Value: failed},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})

	return results, nil
}

func (p *Processor) processFile(file, outputDir string) MonthlySummary {
	period, ok := PeriodFromFilename(file)
	if !ok {
		p.logger.Debug("No month in file name", logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)})
	}
	m := MonthlySummary{File: filepath.Base(file), Period: period}

	result, err := p.parser.ParseFile(file)
	if err != nil {
		p.logger.WithError(err).Error("Failed to parse statement",
			logging.Field{Key: logging.FieldFile, Value: file})
		m.Err = err
		return m
	}
	m.Summary = result.Summary

	out, err := p.exporter.Export(result, file, outputDir)
	if err != nil {
		p.logger.WithError(err).Error("Failed to export statement",
			logging.Field{Key: logging.FieldFile, Value: file})
		m.Err = err
		return m
	}
	m.ParsedFile = filepath.Base(out)

	if err := reconciler.Check(result.Summary, p.tolerance); err != nil {
		p.logger.Warn("Statement does not reconcile",
			logging.Field{Key: logging.FieldFile, Value: m.File},
			logging.Field{Key: logging.FieldMonth, Value: period.String()},
			logging.Field{Key: logging.FieldError, Value: err.Error()})
	}
	return m
}
