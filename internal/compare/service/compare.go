package service

import (
	"math"

	"tabcompare-service/internal/compare/model"
	"tabcompare-service/internal/table"
)

// float64 machine epsilon; absorbs rounding at the tolerance boundary
// (1.01-1.00 is 0.010000000000000009).
const epsilon = 2.220446049250313e-16

// maxSlackShare caps the rounding slack as a share of the tolerance.
const maxSlackShare = 1e-6

// ValuePair holds the raw values of one aligned cell.
type ValuePair struct {
	A, B string
}

func (p ValuePair) String() string { return p.A + " / " + p.B }

// Aligned is the common-rows, common-columns view of two tables: row r of A
// and row r of B carry Keys[r], column c of both carries Columns[c].
type Aligned struct {
	Keys    []Key
	Columns []string
	A, B    table.Table
}

// align re-selects the first row of every common key from both tables,
// in key order, projected to the given columns.
func align(a, b table.Table, idxA, idxB *keyIndex, common []Key, columns []string) Aligned {
	out := Aligned{
		Keys:    common,
		Columns: columns,
		A:       project(a, columns, len(common)),
		B:       project(b, columns, len(common)),
	}
	colA := columnPositions(a, columns)
	colB := columnPositions(b, columns)
	for _, k := range common {
		id := k.ID()
		out.A.Rows = append(out.A.Rows, pick(a.Rows[idxA.first[id]], colA))
		out.B.Rows = append(out.B.Rows, pick(b.Rows[idxB.first[id]], colB))
	}
	return out
}

func project(t table.Table, columns []string, capacity int) table.Table {
	out := table.Table{
		Name:    t.Name,
		Columns: append([]string(nil), columns...),
		Kinds:   make([]table.Kind, len(columns)),
		Rows:    make([]table.Row, 0, capacity),
	}
	for i, c := range columns {
		if j := t.ColumnIndex(c); j >= 0 && j < len(t.Kinds) {
			out.Kinds[i] = t.Kinds[j]
		}
	}
	return out
}

func columnPositions(t table.Table, columns []string) []int {
	pos := make([]int, len(columns))
	for i, c := range columns {
		pos[i] = t.ColumnIndex(c)
	}
	return pos
}

func pick(r table.Row, pos []int) table.Row {
	out := make(table.Row, len(pos))
	for i, p := range pos {
		if p >= 0 && p < len(r) {
			out[i] = r[p]
		}
	}
	return out
}

// CompareCells decides equality for every aligned cell. The diff matrix and
// the value pairs share the same shape; pairs always carry the unnormalized
// values whatever the verdict.
func CompareCells(al Aligned, opt model.Options) (model.DiffMatrix, [][]ValuePair) {
	diff := model.DiffMatrix{
		Columns: append([]string(nil), al.Columns...),
		Keys:    keyStrings(al.Keys),
		Cells:   make([][]bool, len(al.Keys)),
	}
	pairs := make([][]ValuePair, len(al.Keys))

	for r := range al.Keys {
		diff.Cells[r] = make([]bool, len(al.Columns))
		pairs[r] = make([]ValuePair, len(al.Columns))
	}
	for c := range al.Columns {
		numeric := al.A.IsNumeric(c) && al.B.IsNumeric(c)
		for r := range al.Keys {
			va, vb := al.A.Get(r, c), al.B.Get(r, c)
			diff.Cells[r][c] = cellsDiffer(va, vb, numeric, opt)
			pairs[r][c] = ValuePair{A: va.String(), B: vb.String()}
		}
	}
	return diff, pairs
}

func cellsDiffer(va, vb table.Value, numeric bool, opt model.Options) bool {
	if va.IsMissing() || vb.IsMissing() {
		return va.IsMissing() != vb.IsMissing()
	}
	// a stray non-number in a numeric column falls back to text comparison
	if numeric && va.Kind == table.Number && vb.Kind == table.Number {
		return numbersDiffer(va.Num, vb.Num, opt.NumericTolerance)
	}
	return NormalizeValue(va.String(), opt) != NormalizeValue(vb.String(), opt)
}

// numbersDiffer reports |a-b| > tol. Zero tolerance is exact equality.
func numbersDiffer(a, b, tol float64) bool {
	if tol == 0 {
		return a != b
	}
	slack := 4 * epsilon * math.Max(math.Max(math.Abs(a), math.Abs(b)), tol)
	// погрешность не должна съедать разницу, заметную относительно tol
	slack = math.Min(slack, tol*maxSlackShare)
	return math.Abs(a-b)-tol > slack
}
