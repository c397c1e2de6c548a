// Package dateutils provides date handling for ledger headers and exports.
package dateutils

import (
	"regexp"
	"strings"
	"time"
)

// Ledger date layouts
const (
	DateLayoutLedgerShort = "2-Jan-06"
	DateLayoutLedgerLong  = "2-Jan-2006"
	DateLayoutISO         = "2006-01-02"
)

// HeaderPattern matches a date header at the start of a line, e.g. "2-Jul-25" or "02-Jul-2025".
var HeaderPattern = regexp.MustCompile(`^(\d{1,2}-[A-Za-z]{3}-\d{2,4})\b`)

// headerLayouts are tried in order; the short form is the primary ledger convention.
var headerLayouts = []string{DateLayoutLedgerShort, DateLayoutLedgerLong}

// MatchHeader returns the date token and the remaining header text when line starts
// with a date header.
func MatchHeader(line string) (dateToken, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	loc := HeaderPattern.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return "", "", false
	}
	return trimmed[loc[2]:loc[3]], strings.TrimSpace(trimmed[loc[1]:]), true
}

// ParseLedgerDate parses a header date with the short layout, then the long one.
// It returns nil when neither matches; malformed dates never fail the parse.
func ParseLedgerDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range headerLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// FormatLedgerDate renders a date the way the ledger prints it ("2-Jun-25").
// A nil date renders as "".
func FormatLedgerDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	if layout == "" {
		layout = DateLayoutLedgerShort
	}
	return t.Format(layout)
}
