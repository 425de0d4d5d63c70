package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// yearRe matches a run of exactly four digits. Longer digit runs do
	// not contain a year, boundaries on both sides are required.
	yearRe = regexp.MustCompile(`\b(\d{4})\b`)

	// decimalRe matches the first numeric token, with an optional
	// fractional part.
	decimalRe = regexp.MustCompile(`\d+(\.\d+)?`)
)

// placeholders are the ad-hoc strings the dataset uses for missing data,
// compared case-insensitively after trimming.
var placeholders = map[string]struct{}{
	"":              {},
	"-":             {},
	"–":        {},
	"no":            {},
	"n/a":           {},
	"not available": {},
	"tbd":           {},
	"unknown":       {},
}

// IsPlaceholder reports whether the raw field encodes "no data".
func IsPlaceholder(raw string) bool {
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ExtractYear pulls the first four-digit year out of a free-text field such
// as "2007, September" or "2008, Released". Status words like "Discontinued"
// carry no year and yield nil, as do placeholders.
func ExtractYear(raw string) *int {
	if IsPlaceholder(raw) {
		return nil
	}
	match := yearRe.FindString(raw)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &year
}

// ExtractDecimal pulls the first decimal number out of a free-text field
// such as "135.6 g (4.80 oz)" or "3.5 inches". Later candidates (ounce
// conversions, resolution fragments) are ignored.
func ExtractDecimal(raw string) *float64 {
	if IsPlaceholder(raw) {
		return nil
	}
	match := decimalRe.FindString(raw)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &value
}

// CountSensors counts the comma-separated entries of a free-text sensor
// list. Placeholders count as zero sensors; empty tokens between commas are
// discarded.
func CountSensors(raw string) int {
	if IsPlaceholder(raw) {
		return 0
	}
	count := 0
	for _, token := range strings.Split(raw, ",") {
		if strings.TrimSpace(token) != "" {
			count++
		}
	}
	return count
}
