// Package classify handles item classification commands
package classify

import (
	"fmt"
	"strings"

	"fjacquet/poultry-ledger/cmd/root"
	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/store"

	"github.com/spf13/cobra"
)

// Flags holds the classify command options.
type Flags struct {
	Unit        string
	AutoCorrect bool
	DumpRules   string
}

var flags Flags

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify NAME",
	Short: "Classify an item name as egg, feed, medicine or other",
	Long: `Classify an item name with the configured rule tables and print its category.
Multiple arguments are joined into one name. With --dump-rules the effective
rule tables are written to a YAML file that can be edited and passed back as
classifier.rules_file.

Example:
  poultry-ledger classify LAYER MASH --unit KGS
  poultry-ledger classify LARGE --unit NOS --auto-correct`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Unit, "unit", "u", "", "Unit of the item (NOS, KGS, ...)")
	Cmd.Flags().BoolVar(&flags.AutoCorrect, "auto-correct", false, "Treat bare LARGE/SMALL/MEDIUM counted in NOS as eggs")
	Cmd.Flags().StringVar(&flags.DumpRules, "dump-rules", "", "Write the effective rule tables to this YAML file")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" && flags.DumpRules == "" {
		return fmt.Errorf("an item name is required")
	}

	cfg := root.GetConfig()
	if cmd.Flags().Changed("auto-correct") {
		cfg.Parsing.AutoCorrect = flags.AutoCorrect
	}
	appContainer, err := root.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer appContainer.Close()

	out := cmd.OutOrStdout()
	if flags.DumpRules != "" {
		rulesStore := store.NewRulesStore(flags.DumpRules, appContainer.GetLogger())
		if err := rulesStore.SaveRules(appContainer.GetRules()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Rules written to %s\n", flags.DumpRules)
	}
	if name == "" {
		return nil
	}

	result := appContainer.GetParser().Classifier().Classify(name, flags.Unit)
	fmt.Fprintf(out, "%s: %s (rule: %s)\n", name, result.Category, result.Strategy)
	if result.Category == models.CategoryEgg {
		if canonical, grade := categorizer.NormalizeEggName(name); grade != "" {
			fmt.Fprintf(out, "egg grade: %s (%s)\n", grade, canonical)
		}
	}
	for _, note := range result.Notes {
		fmt.Fprintf(out, "note: %s\n", note)
	}
	return nil
}
