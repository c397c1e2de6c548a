package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantDate string
		wantRest string
	}{
		{"short year", "2-Jul-25 To Poultry Egg Purchase 45,000.00", true, "2-Jul-25", "To Poultry Egg Purchase 45,000.00"},
		{"long year", "02-Jul-2025 By Canara Bank", true, "02-Jul-2025", "By Canara Bank"},
		{"leading spaces", "   15-Aug-25 Opening Balance", true, "15-Aug-25", "Opening Balance"},
		{"date only", "31-Jul-25", true, "31-Jul-25", ""},
		{"not at start", "To 2-Jul-25", false, "", ""},
		{"numeric month", "02-07-25 something", false, "", ""},
		{"item line", "LAYER MASH 50 KGS 90/KGS 4500", false, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, rest, ok := MatchHeader(tc.line)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantDate, date)
			assert.Equal(t, tc.wantRest, rest)
		})
	}
}

func TestParseLedgerDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantY   int
		wantM   time.Month
		wantD   int
	}{
		{"short layout", "2-Jul-25", false, 2025, time.July, 2},
		{"zero padded short", "02-Jul-25", false, 2025, time.July, 2},
		{"upper case month", "15-AUG-25", false, 2025, time.August, 15},
		{"long layout fallback", "02-Jul-2025", false, 2025, time.July, 2},
		{"invalid month", "02-Xyz-25", true, 0, 0, 0},
		{"invalid day", "45-Jul-25", true, 0, 0, 0},
		{"three digit year", "02-Jul-202", true, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLedgerDate(tc.input)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantY, got.Year())
			assert.Equal(t, tc.wantM, got.Month())
			assert.Equal(t, tc.wantD, got.Day())
		})
	}
}

func TestFormatLedgerDate(t *testing.T) {
	d := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2-Jun-25", FormatLedgerDate(&d, ""))
	assert.Equal(t, "2025-06-02", FormatLedgerDate(&d, DateLayoutISO))
	assert.Equal(t, "", FormatLedgerDate(nil, ""))
}
