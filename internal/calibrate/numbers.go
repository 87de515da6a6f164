package calibrate

import (
	"regexp"
	"strconv"
	"strings"
)

// Numeric token patterns, tried in priority order. Years go first so a
// thousands-separator pattern can't split "1995" into 1 and 995; grouped
// numbers go before plain decimals for the same reason.
var numberPatterns = []*regexp.Regexp{
	// Years 1900-2099
	regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`),
	// Numbers with thousands separators and optional decimals
	regexp.MustCompile(`\b\d{1,3}(?:[.,]\d{3})*(?:[.,]\d+)?\b`),
	// Plain decimals
	regexp.MustCompile(`-?\d+[.,]\d+`),
	// Plain integers
	regexp.MustCompile(`-?\d+`),
}

// Values outside this window are OCR noise, not axis labels.
const (
	sanityMin = -10000
	sanityMax = 100000
)

// ParseNumbers extracts numeric tokens from recognized text. Tokens are
// normalized (comma to dot, thousands separators collapsed) and filtered
// to a sanity range. The same physical label may match several patterns;
// callers dedup across variants anyway.
func ParseNumbers(text string) []float64 {
	clean := strings.ReplaceAll(text, " ", "")
	clean = strings.ReplaceAll(clean, "\n", " ")

	var numbers []float64
	for _, pattern := range numberPatterns {
		for _, match := range pattern.FindAllString(clean, -1) {
			if n, ok := normalizeNumber(match); ok {
				numbers = append(numbers, n)
			}
		}
	}
	return numbers
}

// normalizeNumber converts a matched token to a float, resolving the
// comma/dot ambiguity: "1,000" is the integer thousand, "1,5" is one
// and a half, and a literal dot always reads as a decimal point.
func normalizeNumber(match string) (float64, bool) {
	s := strings.ReplaceAll(match, ",", ".")
	parts := strings.Split(s, ".")

	switch {
	case len(parts) > 2:
		// Multiple separators: all but the last group the thousands
		s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	case len(parts) == 2:
		// One separator followed by exactly 3 digits and no literal dot
		// in the original token is a thousands separator
		if len(parts[1]) == 3 && !strings.Contains(match, ".") {
			s = parts[0] + parts[1]
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if n <= sanityMin || n >= sanityMax {
		return 0, false
	}
	return n, true
}
