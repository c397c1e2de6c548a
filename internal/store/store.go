// Package store loads and saves the classifier's rule tables as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/poultry-ledger/internal/categorizer"
	"fjacquet/poultry-ledger/internal/logging"
	"fjacquet/poultry-ledger/internal/models"
)

// DefaultRulesFile is the file name looked up when no rules file is configured.
const DefaultRulesFile = "rules.yaml"

// RulesLoader provides the classifier's rule tables.
type RulesLoader interface {
	LoadRules() (categorizer.Rules, error)
}

// rulesDocument is the on-disk layout: the tables under a top-level "rules" key.
type rulesDocument struct {
	Rules categorizer.Rules `yaml:"rules"`
}

// RulesStore manages loading and saving of rule tables.
type RulesStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRulesStore creates a new store for the rules file. An empty name means DefaultRulesFile.
func NewRulesStore(rulesFile string, logger logging.Logger) *RulesStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &RulesStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RulesStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".poultry-ledger", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/poultry-ledger/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "poultry-ledger", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules reads the rules file and fills any table it leaves empty from
// categorizer.DefaultRules. A missing file yields the defaults; a malformed
// file is an error.
func (s *RulesStore) LoadRules() (categorizer.Rules, error) {
	defaults := categorizer.DefaultRules()

	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Only an explicitly configured file is worth a warning.
			if s.RulesFile != "" {
				s.logger.Warn("Rules file not found, using built-in rules",
					logging.Field{Key: logging.FieldFile, Value: filename})
			}
			return defaults, nil
		}
		return categorizer.Rules{}, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return categorizer.Rules{}, fmt.Errorf("error reading rules file: %w", err)
	}

	// The tables may sit under a "rules" key or at the top level.
	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return categorizer.Rules{}, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
	}
	rules := doc.Rules
	if isEmpty(rules) {
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return categorizer.Rules{}, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
		}
	}

	s.logger.Debug("Loaded classification rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: "egg_phrases", Value: len(rules.EggPhrases)},
		logging.Field{Key: "feed_phrases", Value: len(rules.FeedPhrases)},
		logging.Field{Key: "medicine_names", Value: len(rules.MedicineNames)},
		logging.Field{Key: "medicine_keywords", Value: len(rules.MedicineKeywords)})

	return rules.Merge(defaults), nil
}

// SaveRules writes rules under a top-level "rules" key, creating the directory if needed.
func (s *RulesStore) SaveRules(rules categorizer.Rules) error {
	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory for rules file: %w", err)
		}
	}

	data, err := yaml.Marshal(rulesDocument{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if err := os.WriteFile(filename, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	s.logger.Info("Saved classification rules",
		logging.Field{Key: logging.FieldFile, Value: filename})
	return nil
}

func isEmpty(r categorizer.Rules) bool {
	return len(r.EggPhrases) == 0 && len(r.FeedPhrases) == 0 && len(r.MedicineNames) == 0 &&
		len(r.MedicineKeywords) == 0 && len(r.SizeWords) == 0 && len(r.EggUnits) == 0
}
