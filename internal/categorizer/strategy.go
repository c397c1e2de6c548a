package categorizer

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"fjacquet/poultry-ledger/internal/models"
)

// Item is the input to classification: a normalized item name and its unit.
type Item struct {
	Name string
	Unit string
}

// ClassificationStrategy is one rung of the classifier's precedence ladder.
type ClassificationStrategy interface {
	// Classify returns the category and true when the strategy recognizes the item.
	Classify(item Item) (models.Category, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}

// ExactPhraseStrategy matches an item name against a fixed phrase list.
type ExactPhraseStrategy struct {
	name     string
	category models.Category
	phrases  map[string]struct{}
}

// NewExactPhraseStrategy builds a strategy that assigns category to names equal to a phrase.
func NewExactPhraseStrategy(name string, category models.Category, phrases []string) *ExactPhraseStrategy {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		p = normalizeName(p)
		if p != "" {
			set[p] = struct{}{}
		}
	}
	return &ExactPhraseStrategy{name: name, category: category, phrases: set}
}

// Name returns the strategy name.
func (s *ExactPhraseStrategy) Name() string {
	return s.name
}

// Classify matches the whole normalized name.
func (s *ExactPhraseStrategy) Classify(item Item) (models.Category, bool) {
	if _, ok := s.phrases[normalizeName(item.Name)]; ok {
		return s.category, true
	}
	return "", false
}

// KeywordStrategy assigns a category when any keyword occurs anywhere in the name.
// Matching runs all keywords in a single Aho-Corasick pass.
type KeywordStrategy struct {
	name     string
	category models.Category
	keywords []string
	matcher  *ahocorasick.Matcher
}

// NewKeywordStrategy builds a loose substring strategy.
func NewKeywordStrategy(name string, category models.Category, keywords []string) *KeywordStrategy {
	s := &KeywordStrategy{name: name, category: category}
	for _, k := range keywords {
		k = normalizeName(k)
		if k != "" {
			s.keywords = append(s.keywords, k)
		}
	}
	if len(s.keywords) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(s.keywords)
	}
	return s
}

// Name returns the strategy name.
func (s *KeywordStrategy) Name() string {
	return s.name
}

// Classify reports a match when any keyword is a substring of the name.
func (s *KeywordStrategy) Classify(item Item) (models.Category, bool) {
	if _, ok := s.MatchedKeyword(item.Name); ok {
		return s.category, true
	}
	return "", false
}

// MatchedKeyword returns the first keyword (in table order) found in name.
func (s *KeywordStrategy) MatchedKeyword(name string) (string, bool) {
	if s.matcher == nil {
		return "", false
	}
	hits := s.matcher.MatchThreadSafe([]byte(normalizeName(name)))
	if len(hits) == 0 {
		return "", false
	}
	first := hits[0]
	for _, h := range hits[1:] {
		if h < first {
			first = h
		}
	}
	return s.keywords[first], true
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
