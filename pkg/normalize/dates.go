package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// Date is a decomposed partial date. Value always holds the original string;
// Year/Month/Day are zero when that component could not be resolved.
type Date struct {
	Value string
	Year  int
	Month int
	Day   int
}

var (
	yearOnlyPattern  = regexp.MustCompile(`^(\d{4})$`)
	yearMonthPattern = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)
)

// DecomposeDate breaks a date string of unknown granularity into its
// components. Bare-year and year-month strings keep only the components they
// carry; anything else goes through a full parse, accepted when the year is
// plausible (>99). Unparseable strings keep just the original value. Empty
// input yields nil.
func DecomposeDate(raw string) *Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// Partial patterns are matched before the full parse so a bare year
	// doesn't get padded out to January 1st.
	if m := yearOnlyPattern.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		return &Date{Value: raw, Year: year}
	}
	if m := yearMonthPattern.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			return &Date{Value: raw, Year: year, Month: month}
		}
		return &Date{Value: raw}
	}

	t, err := dateparse.ParseStrict(raw)
	if err != nil || t.Year() <= 99 {
		return &Date{Value: raw}
	}

	return &Date{
		Value: raw,
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
	}
}
