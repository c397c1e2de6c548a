package store

import (
	"fjacquet/poultry-ledger/internal/categorizer"
)

// MockRulesStore is a mock implementation of RulesLoader for testing.
type MockRulesStore struct {
	Rules categorizer.Rules

	// LoadRulesError is returned by LoadRules when set.
	LoadRulesError error
}

// LoadRules returns the mock rules.
func (m *MockRulesStore) LoadRules() (categorizer.Rules, error) {
	if m.LoadRulesError != nil {
		return categorizer.Rules{}, m.LoadRulesError
	}
	return m.Rules, nil
}
