package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	integerPattern  = regexp.MustCompile(`\d+`)
	currencyPattern = regexp.MustCompile(`\$?([\d,]+)`)
)

// ExtractInteger returns the first decimal integer substring in text.
// The second return value reports whether one was found.
func ExtractInteger(text string) (int, bool) {
	match := integerPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCurrency returns the first currency-like number in text, e.g. "9000",
// "$9,000" or "9,000/mo". Thousands separators are stripped before parsing.
func ParseCurrency(text string) (int, bool) {
	match := currencyPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatThousands renders n with comma thousands separators ("12345" -> "12,345").
func FormatThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return sign + strings.Join(parts, ",")
}

// PluralSuffix returns "s" when n calls for a plural noun.
func PluralSuffix(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
