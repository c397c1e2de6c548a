// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/poultry-ledger/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "LEDGER"

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Parsing struct {
		AutoCorrect     bool     `mapstructure:"auto_correct" yaml:"auto_correct"`
		ParsingNotes    bool     `mapstructure:"parsing_notes" yaml:"parsing_notes"`
		PreferQtyRate   bool     `mapstructure:"prefer_qty_rate" yaml:"prefer_qty_rate"`
		PaymentKeywords []string `mapstructure:"payment_keywords" yaml:"payment_keywords"`
	} `mapstructure:"parsing" yaml:"parsing"`

	Classifier struct {
		RulesFile         string `mapstructure:"rules_file" yaml:"rules_file"`
		NormalizeEggNames bool   `mapstructure:"normalize_egg_names" yaml:"normalize_egg_names"`
	} `mapstructure:"classifier" yaml:"classifier"`

	Reconciliation struct {
		Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
	} `mapstructure:"reconciliation" yaml:"reconciliation"`

	Export struct {
		Format       string `mapstructure:"format" yaml:"format"`
		DateFormat   string `mapstructure:"date_format" yaml:"date_format"`
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	} `mapstructure:"export" yaml:"export"`

	Batch struct {
		Workers int    `mapstructure:"workers" yaml:"workers"`
		Pattern string `mapstructure:"pattern" yaml:"pattern"`
	} `mapstructure:"batch" yaml:"batch"`
}

// ToleranceDecimal returns the reconciliation tolerance as a decimal.
func (c *Config) ToleranceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Reconciliation.Tolerance)
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load reads the configuration. An explicit configFile replaces the search
// path and must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.poultry-ledger")
		v.AddConfigPath(".poultry-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)

	// Parsing defaults
	v.SetDefault("parsing.auto_correct", false)
	v.SetDefault("parsing.parsing_notes", true)
	v.SetDefault("parsing.prefer_qty_rate", true)
	v.SetDefault("parsing.payment_keywords", []string{"CANARA BANK", "PAYMENT"})

	// Classifier defaults
	v.SetDefault("classifier.rules_file", "")
	v.SetDefault("classifier.normalize_egg_names", false)

	// Reconciliation defaults
	v.SetDefault("reconciliation.tolerance", 0.01)

	// Export defaults
	v.SetDefault("export.format", FormatXLSX)
	v.SetDefault("export.date_format", "2-Jan-06")
	v.SetDefault("export.csv_delimiter", ",")

	// Batch defaults
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.pattern", "*.pdf")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != logging.FormatText && config.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate export
	if config.Export.Format != FormatXLSX && config.Export.Format != FormatCSV {
		return fmt.Errorf("invalid export format: %s (must be 'xlsx' or 'csv')", config.Export.Format)
	}
	if len(config.Export.CSVDelimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Export.CSVDelimiter)
	}
	if config.Export.DateFormat == "" {
		return fmt.Errorf("export.date_format cannot be empty")
	}

	// Validate reconciliation tolerance
	if config.Reconciliation.Tolerance < 0 {
		return fmt.Errorf("reconciliation.tolerance must not be negative, got: %f", config.Reconciliation.Tolerance)
	}

	// Validate batch settings
	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}
	if config.Batch.Pattern == "" {
		return fmt.Errorf("batch.pattern cannot be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig creates the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
