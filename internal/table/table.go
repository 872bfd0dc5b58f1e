// Package table holds the in-memory representation of a loaded dataset.
// Cell values are typed once by the loader and never re-inspected.
package table

import (
	"encoding/json"
	"strconv"
)

type Kind uint8

const (
	Missing Kind = iota
	Number
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "missing"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// MissingText is how an absent value is rendered in reports.
const MissingText = "<missing>"

// Value is one cell. Str is the text as uploaded; for Number it is the
// source Num was parsed from and Num is used only for numeric comparison.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// NumberValue builds a number without source text; String formats Num.
func NumberValue(f float64) Value { return Value{Kind: Number, Num: f} }

// ParsedNumber keeps the uploaded text next to the parsed number.
func ParsedNumber(raw string, f float64) Value { return Value{Kind: Number, Num: f, Str: raw} }

func TextValue(s string) Value { return Value{Kind: Text, Str: s} }
func MissingValue() Value      { return Value{} }

func (v Value) IsMissing() bool { return v.Kind == Missing }

// String returns the raw textual form of the value as the user uploaded it.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		if v.Str != "" {
			return v.Str
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case Text:
		return v.Str
	default:
		return MissingText
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Number:
		return json.Marshal(v.Num)
	case Text:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}

type Row []Value

// Table is an ordered set of rows sharing one column set.
// Kinds[i] is the column type decided at load time: Number or Text.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Kinds   []Kind   `json:"kinds"`
	Rows    []Row    `json:"rows"`
}

// ColumnIndex returns the position of name in Columns or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t Table) IsNumeric(col int) bool {
	return col >= 0 && col < len(t.Kinds) && t.Kinds[col] == Number
}

// Clone returns a deep copy so callers can rename columns or derive data
// without touching the original.
func (t Table) Clone() Table {
	out := Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Kinds:   append([]Kind(nil), t.Kinds...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// Get returns the value of column col in row r, Missing when out of range.
func (t Table) Get(r, col int) Value {
	if r < 0 || r >= len(t.Rows) || col < 0 || col >= len(t.Rows[r]) {
		return MissingValue()
	}
	return t.Rows[r][col]
}
