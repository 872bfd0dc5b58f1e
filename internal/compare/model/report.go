package model

import (
	"encoding/json"
	"fmt"
)

const (
	KeyColumn         = "_key"
	ExplanationPrefix = "Explanation_"
)

// Cell is one compared cell of the report: the raw values as uploaded
// ("A / B") and, when they differ, the explanation.
type Cell struct {
	Value       string   `json:"value"`
	Differs     bool     `json:"differs"`
	Category    Category `json:"category"`
	Explanation string   `json:"explanation"`
}

// MarshalJSON writes category only for differing cells; NoExplanation is the
// zero value and must still show up there.
func (c Cell) MarshalJSON() ([]byte, error) {
	type plain Cell
	out := struct {
		plain
		Category *Category `json:"category,omitempty"`
	}{plain: plain(c)}
	if c.Differs {
		cat := c.Category
		out.Category = &cat
	}
	return json.Marshal(out)
}

type ReportRow struct {
	Key   string `json:"key"`
	Cells []Cell `json:"cells"`
}

// Report is the combined table: key first, then each data column with its
// explanation.
type Report struct {
	KeyColumn string      `json:"keyColumn"`
	Columns   []string    `json:"columns"`
	Rows      []ReportRow `json:"rows"`
}

// ColumnDetail is a row of the per-column details view.
type ColumnDetail struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Explanation string `json:"explanation"`
}

func ExplanationColumn(col string) string { return ExplanationPrefix + col }

// MainHeader is the key column followed by the data columns.
func (r Report) MainHeader() []string {
	h := make([]string, 0, len(r.Columns)+1)
	h = append(h, r.KeyColumn)
	return append(h, r.Columns...)
}

func (r Report) MainRecords() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make([]string, 0, len(row.Cells)+1)
		rec = append(rec, row.Key)
		for _, c := range row.Cells {
			rec = append(rec, c.Value)
		}
		out = append(out, rec)
	}
	return out
}

// ExplanationHeader interleaves every data column with its explanation column.
func (r Report) ExplanationHeader() []string {
	h := make([]string, 0, 2*len(r.Columns)+1)
	h = append(h, r.KeyColumn)
	for _, c := range r.Columns {
		h = append(h, c, ExplanationColumn(c))
	}
	return h
}

func (r Report) ExplanationRecords() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make([]string, 0, 2*len(row.Cells)+1)
		rec = append(rec, row.Key)
		for _, c := range row.Cells {
			rec = append(rec, c.Value, c.Explanation)
		}
		out = append(out, rec)
	}
	return out
}

// FilterByColumn returns the rows where col differs, projected to
// key / value pair / explanation.
func (r Report) FilterByColumn(col string) ([]ColumnDetail, error) {
	c := indexOf(r.Columns, col)
	if c < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	out := make([]ColumnDetail, 0)
	for _, row := range r.Rows {
		cell := row.Cells[c]
		if !cell.Differs {
			continue
		}
		out = append(out, ColumnDetail{Key: row.Key, Value: cell.Value, Explanation: cell.Explanation})
	}
	return out, nil
}
