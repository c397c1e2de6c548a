// Package batch parses a directory of monthly ledger statements concurrently and
// produces the monthly and yearly profit summary.
package batch

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// monthAbbreviations maps the month token of a statement file name to its month.
// "FED" is a misspelling found on real statements.
var monthAbbreviations = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "FED": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June, "JUL": time.July,
	"AUG": time.August, "SEP": time.September, "OCT": time.October,
	"NOV": time.November, "DEC": time.December,
}

// Period is the statement month encoded in a file name such as "25_01_JAN.pdf".
type Period struct {
	Year  int
	Month time.Month
	// Abbr is the month token as written in the file name.
	Abbr string
}

// IsZero reports whether no period could be read.
func (p Period) IsZero() bool {
	return p.Month == 0
}

// String returns the period as "January 2025", or "" when unknown.
func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	if p.Year == 0 {
		return p.Month.String()
	}
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Before orders periods chronologically; unknown periods sort last.
func (p Period) Before(other Period) bool {
	if p.IsZero() || other.IsZero() {
		return !p.IsZero() && other.IsZero()
	}
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// PeriodFromFilename extracts the period from a YY_MM_MON file name. The month
// token decides the month; the numeric month is only a fallback when the token
// is not a known abbreviation.
func PeriodFromFilename(filename string) (Period, bool) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	if len(parts) < 3 {
		return Period{}, false
	}

	p := Period{Abbr: strings.ToUpper(parts[2])}
	if yy, err := strconv.Atoi(parts[0]); err == nil && yy >= 0 && yy < 100 {
		p.Year = 2000 + yy
	}

	if m, ok := monthAbbreviations[p.Abbr]; ok {
		p.Month = m
		return p, true
	}
	if mm, err := strconv.Atoi(parts[1]); err == nil && mm >= 1 && mm <= 12 {
		p.Month = time.Month(mm)
		return p, true
	}
	return Period{}, false
}
