package categorizer

import (
	"testing"

	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		name     string
		item     string
		unit     string
		expected models.Category
		strategy string
	}{
		{"egg phrase", "LARGE EGG", "NOS", models.CategoryEgg, "egg_phrase"},
		{"egg phrase lower case", "  correct egg ", "NOS", models.CategoryEgg, "egg_phrase"},
		{"feed phrase", "LAYER MASH", "KGS", models.CategoryFeed, "feed_phrase"},
		{"longer feed phrase", "PRE LAYER MASH", "KGS", models.CategoryFeed, "feed_phrase"},
		{"medicine exact", "VETMULIN", "KGS", models.CategoryMedicine, "medicine_name"},
		{"medicine exact with parens", "VENTRIM (VITAL)", "NOS", models.CategoryMedicine, "medicine_name"},
		{"medicine keyword", "SUPER TOXIBAN", "KGS", models.CategoryMedicine, "medicine_keyword"},
		{"medicine keyword grit", "MARBLE GRIT", "KGS", models.CategoryMedicine, "medicine_keyword"},
		{"bare size word", "LARGE", "NOS", models.CategoryOther, "default"},
		{"unknown item", "GUNNY BAGS", "NOS", models.CategoryOther, "default"},
		{"empty name", "", "NOS", models.CategoryOther, "default"},
		{"none name", "NONE", "", models.CategoryOther, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.item, tt.unit)
			assert.Equal(t, tt.expected, got.Category)
			assert.Equal(t, tt.strategy, got.Strategy)
			assert.Empty(t, got.Notes)
		})
	}
}

func TestClassifier_Precedence(t *testing.T) {
	// The same name appears in several tables; the earlier rung must win.
	rules := Rules{
		EggPhrases:       []string{"MIXED LOT"},
		FeedPhrases:      []string{"MIXED LOT", "VET MASH"},
		MedicineNames:    []string{"MIXED LOT", "VET MASH", "VETMIX"},
		MedicineKeywords: []string{"MIX", "VET"},
	}
	c := New(rules)

	assert.Equal(t, models.CategoryEgg, c.Classify("MIXED LOT", "").Category)
	assert.Equal(t, models.CategoryFeed, c.Classify("VET MASH", "").Category)
	got := c.Classify("VETMIX", "")
	assert.Equal(t, models.CategoryMedicine, got.Category)
	assert.Equal(t, "medicine_name", got.Strategy)
	got = c.Classify("PREMIX POWDER", "")
	assert.Equal(t, models.CategoryMedicine, got.Category)
	assert.Equal(t, "medicine_keyword", got.Strategy)
}

func TestClassifier_ExactMatchIsNotSubstring(t *testing.T) {
	c := NewDefault()

	// "LARGE EGG TRAY" is not exactly an egg phrase and contains no medicine keyword.
	assert.Equal(t, models.CategoryOther, c.Classify("LARGE EGG TRAY", "NOS").Category)
}

func TestClassifier_AutoCorrect(t *testing.T) {
	tests := []struct {
		name        string
		autoCorrect bool
		item        string
		unit        string
		expected    models.Category
		expectNote  bool
	}{
		{"disabled by default", false, "LARGE", "NOS", models.CategoryOther, false},
		{"enabled large nos", true, "LARGE", "NOS", models.CategoryEgg, true},
		{"enabled small no", true, "SMALL", "NO", models.CategoryEgg, true},
		{"enabled medium trailing space", true, "MEDIUM  ", "nos", models.CategoryEgg, true},
		{"enabled but kgs", true, "LARGE", "KGS", models.CategoryOther, false},
		{"enabled but no unit", true, "LARGE", "", models.CategoryOther, false},
		{"enabled but more words", true, "LARGE TRAY", "NOS", models.CategoryOther, false},
		{"enabled already egg", true, "LARGE EGG", "NOS", models.CategoryEgg, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c *Classifier
			if tt.autoCorrect {
				c = NewDefault(WithAutoCorrect(true))
			} else {
				c = NewDefault()
			}
			got := c.Classify(tt.item, tt.unit)
			assert.Equal(t, tt.expected, got.Category)
			if tt.expectNote {
				assert.Equal(t, []string{models.NoteAutoClassifiedToEgg}, got.Notes)
				assert.Equal(t, "auto_correct", got.Strategy)
			} else {
				assert.Empty(t, got.Notes)
			}
		})
	}
}

func TestClassifier_IsTotal(t *testing.T) {
	c := NewDefault(WithAutoCorrect(true))
	names := []string{"", " ", "123", "LARGE", "D3", "LAYER MASH BULK", "X", "ROVIMIX", "CHICKS"}
	for _, n := range names {
		got := c.Classify(n, "NOS")
		assert.True(t, got.Category.IsValid(), "name %q produced %q", n, got.Category)
		assert.Equal(t, got, c.Classify(n, "NOS"), "classification must be deterministic")
	}
}

func TestClassifier_LogsDecision(t *testing.T) {
	logger := &logging.MockLogger{}
	c := NewDefault(WithLogger(logger))

	c.Classify("LAYER MASH", "KGS")

	entries := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 1)
	assert.Equal(t, "Item classified", entries[0].Message)
}

func TestKeywordStrategy_MatchedKeyword(t *testing.T) {
	s := NewKeywordStrategy("kw", models.CategoryMedicine, []string{"VET", "NECRO"})

	kw, ok := s.MatchedKeyword("necrovet plus")
	require.True(t, ok)
	assert.Equal(t, "VET", kw)

	_, ok = s.MatchedKeyword("LAYER MASH")
	assert.False(t, ok)

	empty := NewKeywordStrategy("kw", models.CategoryMedicine, nil)
	_, ok = empty.MatchedKeyword("VET")
	assert.False(t, ok)
}

func TestNormalizeEggName(t *testing.T) {
	tests := []struct {
		input string
		name  string
		grade EggGrade
	}{
		{"LARGE EGG", "LARGE EGG", EggLarge},
		{"correct size", "LARGE EGG", EggLarge},
		{"EXPORT EGG", "LARGE EGG", EggLarge},
		{"MEDIUM EGG", "MEDIUM EGG", EggMedium},
		{"SMALL", "SMALL EGG", EggSmall},
		{"BROKEN EGGS", "BROKEN EGG", EggBroken},
		{"DOUBLE YOLK", "DOUBLE YOLK EGG", EggDoubleYolk},
		{"DIRTY EGG", "DIRT EGG", EggDirt},
		{"TABLE EGG", "LARGE EGG", EggLarge},
		{"LAYER MASH", "LAYER MASH", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, grade := NormalizeEggName(tt.input)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.grade, grade)
		})
	}
}
