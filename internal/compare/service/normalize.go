package service

import (
	"fmt"
	"strings"
	"unicode"

	"tabcompare-service/internal/compare/model"
	"tabcompare-service/internal/table"
)

// NormalizeValue is the normalization pipeline for textual comparison and keys.
func NormalizeValue(s string, opt model.Options) string {
	out := s

	// 1) регистр
	if opt.IgnoreCase {
		out = strings.ToLower(out)
	}

	// 2) пробелы: обрезка по краям и схлопывание внутренних
	if opt.IgnoreWhitespace {
		out = collapseSpaces(out)
	}

	return out
}

// NormalizeColumns returns a copy of t with lower-cased column names when
// IgnoreCase is set. Both tables must go through it or key lookups miss.
func NormalizeColumns(t table.Table, opt model.Options) (table.Table, error) {
	out := t.Clone()
	seen := make(map[string]struct{}, len(out.Columns))
	for i, c := range out.Columns {
		if opt.IgnoreCase {
			c = strings.ToLower(c)
		}
		if _, dup := seen[c]; dup {
			return table.Table{}, fmt.Errorf("%w: %q in table %s", model.ErrDuplicateColumn, c, t.Name)
		}
		seen[c] = struct{}{}
		out.Columns[i] = c
	}
	return out, nil
}

// NormalizeColumnName resolves a user supplied column name against the
// normalized columns of a Result.
func NormalizeColumnName(name string, opt model.Options) string {
	name = strings.TrimSpace(name)
	if opt.IgnoreCase {
		name = strings.ToLower(name)
	}
	return name
}

// normalizeKeyColumns resolves user supplied key names the same way column
// names were normalized, keeping the first occurrence of each.
func normalizeKeyColumns(keys []string, opt model.Options) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = NormalizeColumnName(k, opt)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// removeSpaces drops every whitespace rune.
func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
