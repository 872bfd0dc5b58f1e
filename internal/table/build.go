package table

import (
	"strings"

	"tabcompare-service/internal/utils"
)

// FromRecords types raw string records into a Table. An empty (blank) cell is
// Missing; a column is Number when every non-missing cell parses as a number.
func FromRecords(name string, headers []string, records [][]string, decimalComma bool) Table {
	t := Table{
		Name:    name,
		Columns: append([]string(nil), headers...),
		Kinds:   make([]Kind, len(headers)),
		Rows:    make([]Row, 0, len(records)),
	}

	numeric := make([]bool, len(headers))
	seen := make([]bool, len(headers))
	for i := range numeric {
		numeric[i] = true
	}
	for _, rec := range records {
		for c := range headers {
			s := cell(rec, c)
			if strings.TrimSpace(s) == "" {
				continue
			}
			seen[c] = true
			if numeric[c] {
				if _, ok := utils.ParseNumber(s, decimalComma); !ok {
					numeric[c] = false
				}
			}
		}
	}
	for c := range headers {
		if seen[c] && numeric[c] {
			t.Kinds[c] = Number
		} else {
			t.Kinds[c] = Text
		}
	}

	for _, rec := range records {
		row := make(Row, len(headers))
		for c := range headers {
			s := cell(rec, c)
			switch {
			case strings.TrimSpace(s) == "":
				row[c] = MissingValue()
			case t.Kinds[c] == Number:
				f, _ := utils.ParseNumber(s, decimalComma)
				row[c] = ParsedNumber(s, f)
			default:
				row[c] = TextValue(s)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cell(rec []string, c int) string {
	if c < len(rec) {
		return rec[c]
	}
	return ""
}
