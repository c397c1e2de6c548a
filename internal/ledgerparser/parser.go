// Package ledgerparser turns the text lines of a poultry ledger statement into
// classified item records, ancillary entries and a reconciled summary.
//
// A statement is a sequence of date headers ("2-Jul-25 By Poultry Egg 25,000")
// each followed by body lines. Item lines mention a KGS or NOS unit; other body
// lines may carry payments, TDS deductions or discounts. Parse never fails on a
// malformed line: lines it cannot read are skipped and logged at debug level.
package ledgerparser

import (
	"strings"
	"time"

	"fjacquet/poultry-ledger/internal/aggregator"
	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/reconciler"
	"fjacquet/poultry-ledger/internal/textutils"
)

// Options control the parsing heuristics.
type Options struct {
	// AutoCorrect promotes bare LARGE/SMALL/MEDIUM counted in NOS to eggs.
	AutoCorrect bool
	// ParsingNotes attaches diagnostic notes to records. The qty×rate and
	// auto-correct notes are attached regardless.
	ParsingNotes bool
	// PreferQtyRate picks the token equal to qty×rate as the amount when present.
	PreferQtyRate bool
	// NormalizeEggNames groups egg aggregates under canonical egg names.
	NormalizeEggNames bool
	// PaymentKeywords mark money received. Empty means DefaultPaymentKeywords.
	PaymentKeywords []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ParsingNotes:    true,
		PreferQtyRate:   true,
		PaymentKeywords: DefaultPaymentKeywords,
	}
}

// Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	opts       Options
	classifier *categorizer.Classifier
	aggregator *aggregator.Aggregator
	logger     logging.Logger
}

// New creates a Parser with the default classification rules.
func New(opts Options, logger logging.Logger) *Parser {
	return NewWithRules(categorizer.DefaultRules(), opts, logger)
}

// NewWithRules creates a Parser that classifies items with rules.
func NewWithRules(rules categorizer.Rules, opts Options, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if len(opts.PaymentKeywords) == 0 {
		opts.PaymentKeywords = DefaultPaymentKeywords
	}
	return &Parser{
		opts:       opts,
		classifier: categorizer.New(rules, categorizer.WithAutoCorrect(opts.AutoCorrect), categorizer.WithLogger(logger)),
		aggregator: aggregator.New(aggregator.WithEggNameNormalization(opts.NormalizeEggNames)),
		logger:     logger,
	}
}

// Options returns the options the parser was built with.
func (p *Parser) Options() Options {
	return p.opts
}

// Classifier returns the item classifier used by the parser.
func (p *Parser) Classifier() *categorizer.Classifier {
	return p.classifier
}

// scan is the state of one Parse call.
type scan struct {
	state   ScanState
	records []models.TransactionRecord
	anc     *ancillary
}

// Parse scans lines in document order and returns the full result.
// Lines before the first date header are scanned for bill references and item
// lines only; such records carry no date and no transaction type.
func (p *Parser) Parse(lines []models.RawLine) *models.Result {
	seg := Segment(lines, p.opts.PaymentKeywords)
	s := &scan{anc: newAncillary(p.opts.PaymentKeywords)}

	for _, line := range seg.Leading {
		p.scanLeadingLine(s, line)
	}

	headerDates := make(map[int]*time.Time, len(seg.Blocks))
	for _, block := range seg.Blocks {
		headerDates[block.Header.LineIndex] = block.Header.Date
		p.scanBlock(s, block)
	}

	s.anc.postPass(lines, headerDates)

	aggregates := p.aggregator.Aggregate(s.records)
	summary := reconciler.Summarize(reconciler.Input{
		Aggregates:     aggregates,
		Payments:       s.anc.payments,
		TDS:            s.anc.tds,
		Discounts:      s.anc.discounts,
		OpeningBalance: s.anc.opening,
		ClosingBalance: s.anc.closing,
	})

	p.logger.Debug("Statement scanned",
		logging.Field{Key: logging.FieldCount, Value: len(lines)},
		logging.Field{Key: "blocks", Value: len(seg.Blocks)},
		logging.Field{Key: "records", Value: len(s.records)})

	return &models.Result{
		Records:    s.records,
		Aggregates: aggregates,
		Payments:   s.anc.payments,
		TDS:        s.anc.tds,
		Discounts:  s.anc.discounts,
		Summary:    summary,
	}
}

func (p *Parser) scanLeadingLine(s *scan, line models.RawLine) {
	text := strings.TrimSpace(line.Text)
	upper := strings.ToUpper(text)
	s.state.setBill(textutils.ExtractStrayBillNumber(upper))

	if !IsItemLine(text) {
		return
	}
	rec, ok := p.buildRecord(s, line, text, nil)
	if ok {
		s.records = append(s.records, rec)
	}
}

func (p *Parser) scanBlock(s *scan, block Block) {
	h := block.Header
	s.state.setBill(derefBill(h.BillNo))
	s.anc.captureHeader(h, &s.state)

	p.logger.Debug("Block opened",
		logging.Field{Key: logging.FieldBlock, Value: h.DateToken},
		logging.Field{Key: logging.FieldTxnType, Value: string(h.TxnType)},
		logging.Field{Key: logging.FieldLine, Value: h.LineIndex})

	for _, line := range block.Body {
		text := strings.TrimSpace(line.Text)
		s.state.setBill(textutils.ExtractBodyBillNumber(strings.ToUpper(text)))

		s.anc.captureTDSLine(line, text, h.Date)

		if IsItemLine(text) {
			if rec, ok := p.buildRecord(s, line, text, &h); ok {
				s.records = append(s.records, rec)
			}
			continue
		}
		s.anc.captureNonItemLine(line, text, h)
	}
}

// buildRecord parses and classifies an item line. h is nil outside any block.
func (p *Parser) buildRecord(s *scan, line models.RawLine, text string, h *Header) (models.TransactionRecord, bool) {
	item, ok := ParseItemLine(text, p.opts.PreferQtyRate)
	if !ok {
		p.logger.Debug("Item line skipped",
			logging.Field{Key: logging.FieldLine, Value: line.Index})
		return models.TransactionRecord{}, false
	}

	classification := p.classifier.Classify(item.ItemName, derefString(item.Unit))

	rec := models.TransactionRecord{
		Category:     classification.Category,
		ItemName:     item.ItemName,
		Qty:          item.Qty,
		Unit:         item.Unit,
		Rate:         item.Rate,
		Amount:       item.Amount,
		AmountSource: item.AmountSource,
		BillNo:       s.state.billCopy(),
		RawLine:      text,
		LineIndex:    line.Index,
	}
	if h != nil {
		rec.Date = h.Date
		rec.TxnType = h.TxnType
		rec.HeaderAmount = h.Amount
	}

	p.annotate(&rec, item, h, classification.Notes)
	return rec, true
}

// annotate attaches parsing notes in a fixed order. Unit and header checks only
// apply inside a block.
func (p *Parser) annotate(rec *models.TransactionRecord, item ItemLine, h *Header, classifierNotes []string) {
	if item.AmountSource == models.AmountSourceQtyRate {
		rec.AddNote(models.NoteAmountSourceQtyRate)
	}
	if p.opts.ParsingNotes {
		if expected, ok := item.ExpectedAmount(); ok && rec.Amount.Sub(expected).Abs().GreaterThan(mismatchTolerance) {
			rec.AddNote(models.NoteAmountMismatchQtyRate)
		}
		if h != nil {
			unit := strings.ToUpper(rec.UnitString())
			if rec.Category == models.CategoryEgg && strings.Contains(unit, "KG") {
				rec.AddNote(models.NoteUnitKgForEgg)
			}
			if rec.Category == models.CategoryFeed && !strings.Contains(unit, "KG") {
				rec.AddNote(models.NoteUnitNotKgForFeed)
			}
			hint := string(h.TxnType)
			if (strings.HasPrefix(hint, "egg") && rec.Category != models.CategoryEgg) ||
				(strings.HasPrefix(hint, "feed") && rec.Category != models.CategoryFeed) {
				rec.AddNote(models.NoteCategoryDiffersHeader)
			}
		}
	}
	for _, n := range classifierNotes {
		rec.AddNote(n)
	}
	if len(rec.Notes) > 0 {
		p.logger.Debug("Record annotated",
			logging.Field{Key: logging.FieldItem, Value: rec.ItemName},
			logging.Field{Key: logging.FieldNote, Value: rec.NotesString()})
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBill(b *string) (string, bool) {
	if b == nil {
		return "", false
	}
	return *b, true
}
