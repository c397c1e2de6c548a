// Package categorizer classifies ledger item names into egg, feed, medicine or other.
//
// Classification walks a fixed precedence ladder built from injected rule tables:
// exact egg phrase, exact feed phrase, exact medicine name, loose medicine keyword,
// and finally "other". An optional auto-correct rule promotes bare egg grades counted
// in NOS to eggs and tags the record so the correction can be audited.
package categorizer

import (
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// Classification is the outcome for one item.
type Classification struct {
	Category models.Category
	// Strategy names the rule that decided the category ("default" when none matched).
	Strategy string
	Notes    []string
}

// Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	strategies  []ClassificationStrategy
	sizeWords   map[string]struct{}
	eggUnits    map[string]struct{}
	autoCorrect bool
	logger      logging.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithAutoCorrect enables the bare-size-word egg correction.
func WithAutoCorrect(enabled bool) Option {
	return func(c *Classifier) {
		c.autoCorrect = enabled
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger logging.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a classifier from rule tables. Empty tables simply never match.
func New(rules Rules, opts ...Option) *Classifier {
	c := &Classifier{
		strategies: []ClassificationStrategy{
			NewExactPhraseStrategy("egg_phrase", models.CategoryEgg, rules.EggPhrases),
			NewExactPhraseStrategy("feed_phrase", models.CategoryFeed, rules.FeedPhrases),
			NewExactPhraseStrategy("medicine_name", models.CategoryMedicine, rules.MedicineNames),
			NewKeywordStrategy("medicine_keyword", models.CategoryMedicine, rules.MedicineKeywords),
		},
		sizeWords: toSet(rules.SizeWords),
		eggUnits:  toSet(rules.EggUnits),
		logger:    logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault builds a classifier from DefaultRules.
func NewDefault(opts ...Option) *Classifier {
	return New(DefaultRules(), opts...)
}

// AutoCorrectEnabled reports whether the auto-correct rule is active.
func (c *Classifier) AutoCorrectEnabled() bool {
	return c.autoCorrect
}

// Classify returns the category of an item name with its unit.
func (c *Classifier) Classify(name, unit string) Classification {
	item := Item{Name: normalizeName(name), Unit: normalizeName(unit)}

	result := Classification{Category: models.CategoryOther, Strategy: "default"}
	if item.Name != "" && item.Name != "NONE" {
		for _, s := range c.strategies {
			if category, ok := s.Classify(item); ok {
				result.Category = category
				result.Strategy = s.Name()
				break
			}
		}
	}

	if c.autoCorrect && result.Category != models.CategoryEgg && c.isBareSizeWord(item) {
		result.Category = models.CategoryEgg
		result.Strategy = "auto_correct"
		result.Notes = append(result.Notes, models.NoteAutoClassifiedToEgg)
	}

	c.logger.Debug("Item classified",
		logging.Field{Key: logging.FieldItem, Value: item.Name},
		logging.Field{Key: logging.FieldCategory, Value: string(result.Category)},
		logging.Field{Key: logging.FieldStrategy, Value: result.Strategy})

	return result
}

// isBareSizeWord is true for "LARGE"/"SMALL"/"MEDIUM" counted in NOS/NO.
// The name has already been trimmed, so trailing whitespace is accepted.
func (c *Classifier) isBareSizeWord(item Item) bool {
	if _, ok := c.sizeWords[item.Name]; !ok {
		return false
	}
	_, ok := c.eggUnits[item.Unit]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = normalizeName(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
