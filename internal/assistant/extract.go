package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Source name: the run of letters, spaces and "&" following a trigger
	// word, stopping at punctuation or end of string. "brought by" is listed
	// before "by" so the longer trigger wins.
	sourcePattern = regexp.MustCompile(`(?i)(?:brought by|from|by)\s+([a-zA-Z &]+)`)

	// Amount: first run of digits with optional comma grouping.
	amountPattern = regexp.MustCompile(`\d[\d,]*`)

	monthPattern = regexp.MustCompile(`(?i)january|february|march|april|may|june|july|august|september|october|november|december`)
)

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ExtractSource returns the referrer name mentioned after "from", "by" or
// "brought by". ok is false when the query names no source; the caller
// degrades to an empty result rather than an error.
func ExtractSource(query string) (string, bool) {
	m := sourcePattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	source := strings.TrimSpace(m[1])
	if source == "" {
		return "", false
	}
	return source, true
}

// ExtractThreshold returns the first number in the query with comma grouping
// stripped.
func ExtractThreshold(query string) (int64, bool) {
	m := amountPattern.FindString(query)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractMonth returns the first English month name in the query, resolved
// against a fixed name table, plus the name as written.
func ExtractMonth(query string) (time.Month, string, bool) {
	name := monthPattern.FindString(query)
	if name == "" {
		return 0, "", false
	}
	return monthsByName[strings.ToLower(name)], name, true
}

func containsMonth(query string) bool {
	return monthPattern.MatchString(query)
}
