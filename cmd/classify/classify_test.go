package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/poultry-ledger/cmd/root"
	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/container"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/store"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func execute(t *testing.T, rules categorizer.Rules, args ...string) (string, error) {
	t.Helper()
	root.Init()
	if found, _, err := root.Cmd.Find([]string{"classify"}); err != nil || found != Cmd {
		root.Cmd.AddCommand(Cmd)
	}
	resetFlags(root.Cmd.PersistentFlags())
	resetFlags(Cmd.Flags())
	root.ContainerOptions = []container.Option{
		container.WithRulesLoader(&store.MockRulesStore{Rules: rules}),
	}
	t.Cleanup(func() { root.ContainerOptions = nil })

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  level: error\n"), 0600))

	var buf bytes.Buffer
	root.Cmd.SetOut(&buf)
	root.Cmd.SetErr(&buf)
	root.Cmd.SetArgs(append([]string{"classify", "--config", cfgFile}, args...))
	err := root.Cmd.Execute()
	return buf.String(), err
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"feed phrase", []string{"LAYER", "MASH", "--unit", "KGS"}, []string{"LAYER MASH: feed (rule: feed_phrase)"}},
		{"medicine keyword", []string{"super toxiban"}, []string{"super toxiban: medicine (rule: medicine_keyword)"}},
		{"egg with grade", []string{"EXPORT EGG", "-u", "NOS"}, []string{"EXPORT EGG: egg (rule: egg_phrase)", "egg grade: LARGE (LARGE EGG)"}},
		{"bare size word", []string{"LARGE", "-u", "NOS"}, []string{"LARGE: other (rule: default)"}},
		{"bare size word corrected", []string{"LARGE", "-u", "NOS", "--auto-correct"}, []string{
			"LARGE: egg (rule: auto_correct)", "note: auto_classified_to_egg",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, categorizer.DefaultRules(), tt.args...)
			require.NoError(t, err)
			for _, e := range tt.expected {
				assert.Contains(t, out, e)
			}
		})
	}
}

func TestClassifyCommand_CustomRules(t *testing.T) {
	rules := categorizer.DefaultRules()
	rules.FeedPhrases = append(rules.FeedPhrases, "CHICK FEED")

	out, err := execute(t, rules, "CHICK FEED")
	require.NoError(t, err)
	assert.Contains(t, out, "CHICK FEED: feed")
}

func TestClassifyCommand_DumpRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules", "rules.yaml")

	out, err := execute(t, categorizer.DefaultRules(), "--dump-rules", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rules written to "+path)

	loaded, err := store.NewRulesStore(path, logging.NewMockLogger()).LoadRules()
	require.NoError(t, err)
	assert.Equal(t, categorizer.DefaultRules(), loaded)
}

func TestClassifyCommand_RequiresName(t *testing.T) {
	_, err := execute(t, categorizer.DefaultRules())
	assert.ErrorContains(t, err, "an item name is required")
}
