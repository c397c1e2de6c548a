package textutils_test

import (
	"testing"

	"fjacquet/poultry-ledger/internal/textutils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestContainsNumber(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
	}{
		{"4500", true},
		{"4,05,455.15", true},
		{"90/KGS", true},
		{"Rs.100", true},
		{"KGS", false},
		{",", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.ContainsNumber(tt.token))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
		ok       bool
	}{
		{"integer", "1000", "1000", true},
		{"grouped", "1,23,456.50", "123456.5", true},
		{"rate token", "90/KGS", "90", true},
		{"trailing dash", "1000/-", "1000", true},
		{"prefixed", "Rs.250", "250", true},
		{"no digits", "NOS", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := textutils.ParseNumber(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
			}
		})
	}
}

func TestLastNumber(t *testing.T) {
	got, ok := textutils.LastNumber("TO CANARA BANK 25,000 REF 12 5,000.50")
	assert.True(t, ok)
	assert.Equal(t, "5000.5", got.String())

	_, ok = textutils.LastNumber("OPENING BALANCE")
	assert.False(t, ok)
}

func TestExtractBillNumbers(t *testing.T) {
	tests := []struct {
		name    string
		extract func(string) (string, bool)
		input   string
		want    string
		ok      bool
	}{
		{"header bill no", textutils.ExtractBillNumber, "POULTRY EGG BILL NO 105 25000", "105", true},
		{"header bill no dot", textutils.ExtractBillNumber, "BILL NO.77", "77", true},
		{"header billno", textutils.ExtractBillNumber, "BILLNO 9", "9", true},
		{"header none", textutils.ExtractBillNumber, "CANARA BANK 500", "", false},
		{"body colon", textutils.ExtractBodyBillNumber, "SUPPLY BILL NO: 42", "42", true},
		{"body billno", textutils.ExtractBodyBillNumber, "BILLNO12", "12", true},
		{"stray tds deducted", textutils.ExtractStrayBillNumber, "TDS DEDUCTED BILL NO 300", "300", true},
		{"stray billno", textutils.ExtractStrayBillNumber, "REF BILLNO 8", "8", true},
		{"stray plain bill no ignored", textutils.ExtractStrayBillNumber, "BILL NO 8", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.extract(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"LARGE", "EGG", "10", "NOS"}, textutils.Tokenize("  LARGE  EGG\t10 NOS "))
	assert.Empty(t, textutils.Tokenize("   "))
}
