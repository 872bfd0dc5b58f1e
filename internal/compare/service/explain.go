package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"tabcompare-service/internal/compare/model"
)

var errNotText = errors.New("value is not valid UTF-8 text")

// Classify runs the explanation cascade; the first matching rule wins:
// case, whitespace, numeric/format, date format, similar name, substantive change.
func Classify(a, b string) (model.Category, error) {
	if !utf8.ValidString(a) || !utf8.ValidString(b) {
		return model.NoExplanation, errNotText
	}
	ta, tb := strings.TrimSpace(a), strings.TrimSpace(b)
	la, lb := strings.ToLower(a), strings.ToLower(b)

	switch {
	case la == lb, ta != tb && strings.ToLower(ta) == strings.ToLower(tb):
		return model.CaseOnly, nil
	case strings.ToLower(removeSpaces(a)) == strings.ToLower(removeSpaces(b)):
		return model.WhitespaceOnly, nil
	case digitLike(a) && digitLike(b):
		return model.NumericOrFormat, nil
	case strings.Contains(a, "/") && strings.Contains(b, "/"):
		return model.DateFormat, nil
	case utf8.RuneCountInString(a) > 3 && utf8.RuneCountInString(b) > 3 &&
		(strings.Contains(la, lb) || strings.Contains(lb, la)):
		return model.SimilarName, nil
	default:
		return model.SubstantiveChange, nil
	}
}

// Explain never fails: a classification error becomes NoExplanation.
func Explain(a, b string) model.Category {
	c, err := Classify(a, b)
	if err != nil {
		return model.NoExplanation
	}
	return c
}

// digitLike: only digits and decimal separators once "," → "." and
// whitespace is dropped.
func digitLike(s string) bool {
	s = strings.ReplaceAll(removeSpaces(s), ",", ".")
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
		default:
			return false
		}
	}
	return digits > 0
}
