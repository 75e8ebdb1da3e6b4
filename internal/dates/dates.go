// Package dates normalizes the heterogeneous birthday strings found in
// partner signup files to ISO form. Partner rosters mix locales, so
// slash-separated dates are disambiguated by evidence where possible and by
// a configurable day-first/month-first policy where not.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Mode is the day/month order policy for ambiguous dates.
type Mode int

const (
	// Auto infers the order from the unambiguous dates in the same column.
	Auto Mode = iota
	// DMY treats the first component as the day.
	DMY
	// MDY treats the first component as the month.
	MDY
)

func (m Mode) String() string {
	switch m {
	case DMY:
		return "dmy"
	case MDY:
		return "mdy"
	default:
		return "auto"
	}
}

// ParseMode maps a config or request string to a Mode. Unknown values
// resolve to Auto.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dmy":
		return DMY
	case "mdy":
		return MDY
	default:
		return Auto
	}
}

var (
	isoRe    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	sepRe    = regexp.MustCompile(`^(\d{1,2})([/.\-])(\d{1,2})([/.\-])(\d{4})$`)
	fallback = []string{
		"2 January 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"January 2 2006",
		"2. January 2006",
	}
)

// ToISO converts a raw date string to YYYY-MM-DD, or "" when the string
// cannot be confidently parsed. It never fails. mode is expected to be
// resolved (DMY or MDY); Auto is treated as day-first.
func ToISO(raw string, mode Mode) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if m := isoRe.FindStringSubmatch(raw); m != nil {
		return validISO(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := sepRe.FindStringSubmatch(raw); m != nil && m[2] == m[4] {
		first, second, year := atoi(m[1]), atoi(m[3]), atoi(m[5])
		day, month := first, second
		switch {
		case first > 12 && second <= 12:
			// Only day-first can explain this row.
		case second > 12 && first <= 12:
			day, month = second, first
		case mode == MDY:
			day, month = second, first
		}
		return validISO(year, month, day)
	}

	for _, layout := range fallback {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// Infer resolves Auto for a column of raw date strings by counting which
// fixed interpretation explains more unambiguous rows. Ties, including
// columns with no unambiguous rows at all, default to day-first.
func Infer(values []string) Mode {
	dayFirst, monthFirst := 0, 0
	for _, v := range values {
		m := sepRe.FindStringSubmatch(strings.TrimSpace(v))
		if m == nil || m[2] != m[4] {
			continue
		}
		first, second := atoi(m[1]), atoi(m[3])
		switch {
		case first > 12 && second <= 12:
			dayFirst++
		case second > 12 && first <= 12:
			monthFirst++
		}
	}
	if monthFirst > dayFirst {
		return MDY
	}
	return DMY
}

// Resolve collapses Auto into a concrete order using the column's values.
func Resolve(mode Mode, values []string) Mode {
	if mode == Auto {
		return Infer(values)
	}
	return mode
}

// validISO zero-pads and returns the date if it denotes a real calendar day,
// checked by round-tripping through time.Date (which normalizes overflow,
// so Feb 30 comes back as a different day).
func validISO(year, month, day int) string {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
