// Package chrono resolves dates out of free-text section titles and orders
// document sections chronologically for the summarization engine.
package chrono

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month-name table for pt-BR titles. Lookup is by the first three letters,
// so both "fev" and "fevereiro" resolve.
var monthsByAbbrev = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"abr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"set": time.September,
	"out": time.October,
	"nov": time.November,
	"dez": time.December,
}

var (
	dayMonthNameRe = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:de\s*)?([a-zA-Zçáéíóúâêôãõ]{3,})`)
	numericDateRe  = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{2,4}))?`)
	looseYearRe    = regexp.MustCompile(`\b(\d{4})\b`)
)

// ResolveDate parses a section title into a calendar date.
// It tries a "day + month name" pattern first ("14 jan", "3 de Fevereiro"),
// then a numeric day/month[/year] pattern ("14/01/2025", "02-03").
// Titles without a recognizable date return ok=false and are treated as
// undated by the sequencer.
func ResolveDate(title string, now time.Time) (time.Time, bool) {
	if m := dayMonthNameRe.FindStringSubmatch(title); m != nil {
		day, _ := strconv.Atoi(m[1])
		if month, ok := lookupMonth(m[2]); ok {
			year := yearFromTitle(title, now)
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
		}
	}

	if m := numericDateRe.FindStringSubmatch(title); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			year := now.Year()
			if m[3] != "" {
				y, _ := strconv.Atoi(m[3])
				if y < 100 {
					y += 2000
				}
				year = y
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// lookupMonth truncates the token to three runes before the table lookup, so
// ambiguous abbreviations and full names share the same key.
func lookupMonth(token string) (time.Month, bool) {
	runes := []rune(strings.ToLower(token))
	if len(runes) < 3 {
		return 0, false
	}
	month, ok := monthsByAbbrev[string(runes[:3])]
	return month, ok
}

// yearFromTitle picks a 4-digit year appearing anywhere in the title, falling
// back to the current year. Meeting logs rarely repeat the year on every tab.
func yearFromTitle(title string, now time.Time) int {
	if m := looseYearRe.FindStringSubmatch(title); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= 1990 && y <= 2100 {
			return y
		}
	}
	return now.Year()
}
