package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/logging"
)

var _ RulesLoader = (*RulesStore)(nil)
var _ RulesLoader = (*MockRulesStore)(nil)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "rules.yaml")
	writeFile(t, testFile, "rules: {}")

	store := NewRulesStore("", nil)

	file, err := store.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = store.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfigFile_ConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0750))
	writeFile(t, filepath.Join(dir, "config", "rules.yaml"), "rules: {}")
	t.Chdir(dir)

	file, err := NewRulesStore("", nil).FindConfigFile("rules.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "rules.yaml"), file)
}

func TestLoadRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, r categorizer.Rules)
	}{
		{
			name: "nested under rules key",
			content: `rules:
  egg_phrases: ["JUMBO EGG"]
  medicine_keywords: ["CALCI"]
`,
			check: func(t *testing.T, r categorizer.Rules) {
				assert.Equal(t, []string{"JUMBO EGG"}, r.EggPhrases)
				assert.Equal(t, []string{"CALCI"}, r.MedicineKeywords)
				assert.Equal(t, categorizer.DefaultRules().FeedPhrases, r.FeedPhrases)
			},
		},
		{
			name: "top level tables",
			content: `feed_phrases:
  - CHICK FEED
size_words: [JUMBO]
`,
			check: func(t *testing.T, r categorizer.Rules) {
				assert.Equal(t, []string{"CHICK FEED"}, r.FeedPhrases)
				assert.Equal(t, []string{"JUMBO"}, r.SizeWords)
				assert.Equal(t, categorizer.DefaultRules().EggPhrases, r.EggPhrases)
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, r categorizer.Rules) {
				assert.Equal(t, categorizer.DefaultRules(), r)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "rules.yaml")
			writeFile(t, file, tt.content)

			rules, err := NewRulesStore(file, nil).LoadRules()
			require.NoError(t, err)
			tt.check(t, rules)
		})
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	logger := logging.NewMockLogger()
	store := NewRulesStore(filepath.Join(t.TempDir(), "absent.yaml"), logger)

	rules, err := store.LoadRules()

	require.NoError(t, err)
	assert.Equal(t, categorizer.DefaultRules(), rules)
	assert.True(t, logger.HasEntry("WARN", "Rules file not found, using built-in rules"))
}

func TestLoadRules_Malformed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rules.yaml")
	writeFile(t, file, "rules: [unclosed")

	_, err := NewRulesStore(file, nil).LoadRules()
	assert.Error(t, err)
}

func TestSaveRules_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "rules.yaml")
	store := NewRulesStore(file, nil)

	rules := categorizer.DefaultRules()
	rules.MedicineNames = append(rules.MedicineNames, "LIVOL")
	require.NoError(t, store.SaveRules(rules))

	loaded, err := store.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestMockRulesStore(t *testing.T) {
	m := &MockRulesStore{Rules: categorizer.Rules{EggPhrases: []string{"X"}}}
	r, err := m.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, r.EggPhrases)

	m.LoadRulesError = assert.AnError
	_, err = m.LoadRules()
	assert.ErrorIs(t, err, assert.AnError)
}
