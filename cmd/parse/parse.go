// Package parse handles single statement conversion commands
package parse

import (
	"fmt"
	"strings"

	"fjacquet/poultry-ledger/cmd/common"
	"fjacquet/poultry-ledger/cmd/root"
	"fjacquet/poultry-ledger/internal/config"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/validation"

	"github.com/spf13/cobra"
)

// Flags holds the parse command's overrides of the loaded configuration.
type Flags struct {
	AutoCorrect    bool
	NoParsingNotes bool
	Format         string
	Tolerance      float64
}

var flags Flags

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one ledger statement and export it",
	Long: `Parse a single poultry ledger statement (PDF or text dump), export the
categorized tables to XLSX or CSV and print the profit summary.

Example:
  poultry-ledger parse -i 25_01_JAN.pdf -o out/ --auto-correct`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().BoolVar(&flags.AutoCorrect, "auto-correct", false, "Treat bare LARGE/SMALL/MEDIUM counted in NOS as eggs")
	Cmd.Flags().BoolVar(&flags.NoParsingNotes, "no-parsing-notes", false, "Do not annotate records with consistency notes")
	Cmd.Flags().StringVar(&flags.Format, "format", "", "Export format: xlsx or csv (default from config)")
	Cmd.Flags().Float64Var(&flags.Tolerance, "tolerance", 0, "Reconciliation tolerance (default from config)")
}

// ApplyFlags overrides cfg with the flags the user actually set.
func ApplyFlags(cmd *cobra.Command, cfg *config.Config, f Flags) error {
	if cmd.Flags().Changed("auto-correct") {
		cfg.Parsing.AutoCorrect = f.AutoCorrect
	}
	if cmd.Flags().Changed("no-parsing-notes") {
		cfg.Parsing.ParsingNotes = !f.NoParsingNotes
	}
	if cmd.Flags().Changed("format") {
		if err := validation.IsValidOutputFormat(f.Format); err != nil {
			return err
		}
		cfg.Export.Format = strings.ToLower(f.Format)
	}
	if cmd.Flags().Changed("tolerance") {
		if f.Tolerance < 0 {
			return fmt.Errorf("tolerance must not be negative, got: %g", f.Tolerance)
		}
		cfg.Reconciliation.Tolerance = f.Tolerance
	}
	return nil
}

func parseFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if err := ApplyFlags(cmd, cfg, flags); err != nil {
		return err
	}

	appContainer, err := root.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer appContainer.Close()

	logger := appContainer.GetLogger()
	logger.Info("Parse command called",
		logging.Field{Key: logging.FieldInputFile, Value: root.SharedFlags.Input},
		logging.Field{Key: logging.FieldOutputFile, Value: root.SharedFlags.Output})

	outcome, err := common.ProcessFile(appContainer.GetAdapter(), appContainer.GetExporter(),
		root.SharedFlags.Input, root.SharedFlags.Output, cfg.ToleranceDecimal(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Parsed %d records from %s\n", len(outcome.Result.Records), root.SharedFlags.Input)
	fmt.Fprintf(out, "Written to %s\n\n", outcome.OutputPath)
	if err := common.PrintSummary(out, outcome.Result.Summary); err != nil {
		return err
	}
	if outcome.Reconciliation != nil {
		fmt.Fprintf(out, "\nWARNING: %v\n", outcome.Reconciliation)
	}
	return nil
}
