package model

import (
	"fmt"
	"math"
)

// Options are fixed for the duration of one comparison run.
type Options struct {
	IgnoreCase       bool    `json:"ignoreCase"`       // lower-case values and column names
	IgnoreWhitespace bool    `json:"ignoreWhitespace"` // trim leading/trailing whitespace
	NumericTolerance float64 `json:"numericTolerance"` // max |a-b| still considered equal
}

func (o Options) Validate() error {
	if math.IsNaN(o.NumericTolerance) || math.IsInf(o.NumericTolerance, 0) || o.NumericTolerance < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, o.NumericTolerance)
	}
	return nil
}

// Partition splits the distinct keys of both tables. Keys are display keys,
// sorted by their components.
type Partition struct {
	Common  []string `json:"common"`
	OnlyInA []string `json:"onlyInA"`
	OnlyInB []string `json:"onlyInB"`
}

// DiffMatrix marks unequal cells. Cells[r][c] refers to Keys[r] and Columns[c].
type DiffMatrix struct {
	Columns []string `json:"columns"`
	Keys    []string `json:"keys"`
	Cells   [][]bool `json:"cells"`
}

// Column returns the flags of one column or nil when the column is unknown.
func (d DiffMatrix) Column(name string) []bool {
	c := indexOf(d.Columns, name)
	if c < 0 {
		return nil
	}
	out := make([]bool, len(d.Cells))
	for r := range d.Cells {
		out[r] = d.Cells[r][c]
	}
	return out
}

type ColumnCount struct {
	Column      string `json:"column"`
	Differences int    `json:"differences"`
}

type Result struct {
	KeyColumns     []string      `json:"keyColumns"`
	Options        Options       `json:"options"`
	RowsA          int           `json:"rowsA"`
	RowsB          int           `json:"rowsB"`
	Columns        []string      `json:"columns"`
	ColumnsOnlyInA []string      `json:"columnsOnlyInA"`
	ColumnsOnlyInB []string      `json:"columnsOnlyInB"`
	Partition      Partition     `json:"partition"`
	Warnings       []Warning     `json:"warnings"`
	Diff           DiffMatrix    `json:"diff"`
	Summary        []ColumnCount `json:"summary"`
	Report         Report        `json:"report"`
}

// TotalDifferences sums the per-column counts.
func (r Result) TotalDifferences() int {
	n := 0
	for _, c := range r.Summary {
		n += c.Differences
	}
	return n
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
