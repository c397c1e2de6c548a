// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/poultry-ledger/internal/config"
	"fjacquet/poultry-ledger/internal/container"
	"fjacquet/poultry-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Config string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "poultry-ledger",
		Short: "A CLI tool to turn poultry farm ledger statements into categorized spreadsheets.",
		Long: `poultry-ledger reads monthly poultry farm ledger statements (PDF or text),
classifies every item line as egg, feed, medicine or other, extracts payments,
TDS and discounts, and exports the result to XLSX or CSV with a profit summary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to poultry-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
	}

	// SharedFlags are the flags accessible to all commands
	SharedFlags = CommonFlags{}

	// ContainerOptions are applied to every container built by a command.
	ContainerOptions []container.Option

	appConfig *config.Config
)

// Init initializes the root command and all flags
// It is safe to call more than once.
func Init() {
	if Cmd.PersistentFlags().Lookup("input") != nil {
		return
	}
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default searches $HOME/.poultry-ledger, .poultry-ledger and .)")
}

// initialize loads .env and configuration, then rebuilds the shared logger.
func initialize() error {
	config.LoadEnv(Log)

	cfg, err := config.Load(SharedFlags.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg
	Log = config.ConfigureLoggingFromConfig(cfg)
	return nil
}

// GetConfig returns a copy of the loaded configuration that a command may
// override with its own flags. Defaults are used when nothing was loaded.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	cfg := *appConfig
	return &cfg
}

// NewContainer wires the application for cfg using the shared logger.
func NewContainer(cfg *config.Config) (*container.Container, error) {
	opts := append([]container.Option{container.WithLogger(Log)}, ContainerOptions...)
	return container.NewContainer(cfg, opts...)
}
