package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rxPlainNumber  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	rxCommaDecimal = regexp.MustCompile(`^[+-]?\d+(?:,\d+)?$`)
)

// ParseNumber parses a cell as a number. With decimalComma it also accepts
// "1 234,50", "197 ,00", "2 345,6" (NBSP/NNBSP group separators).
// Anything that is not entirely a number is rejected: "12 kg" or "1/2/2020"
// are text, not 12 and 122020.
func ParseNumber(s string, decimalComma bool) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if rxPlainNumber.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	if !decimalComma {
		return 0, false
	}
	return ParseFloatRU(s)
}

var spaceRemover = strings.NewReplacer("\u00A0", "", "\u202F", "", " ", "", "\t", "")

// ParseFloatRU parses numbers written with a decimal comma and space group separators.
func ParseFloatRU(s string) (float64, bool) {
	s = spaceRemover.Replace(strings.TrimSpace(s))
	if !rxCommaDecimal.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return f, err == nil
}
