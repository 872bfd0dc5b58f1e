package service

import "tabcompare-service/internal/compare/model"

// Summarize counts the flagged cells of every column, in column order.
func Summarize(d model.DiffMatrix) []model.ColumnCount {
	out := make([]model.ColumnCount, len(d.Columns))
	for c, name := range d.Columns {
		out[c].Column = name
		for r := range d.Cells {
			if d.Cells[r][c] {
				out[c].Differences++
			}
		}
	}
	return out
}

// BuildReport combines the value pairs with an explanation for every
// flagged cell. Equal cells keep an empty explanation.
func BuildReport(d model.DiffMatrix, pairs [][]ValuePair) model.Report {
	rep := model.Report{
		KeyColumn: model.KeyColumn,
		Columns:   append([]string(nil), d.Columns...),
		Rows:      make([]model.ReportRow, len(d.Keys)),
	}
	for r, key := range d.Keys {
		cells := make([]model.Cell, len(d.Columns))
		for c := range d.Columns {
			p := pairs[r][c]
			cells[c] = model.Cell{Value: p.String()}
			if d.Cells[r][c] {
				cat := Explain(p.A, p.B)
				cells[c].Differs = true
				cells[c].Category = cat
				cells[c].Explanation = cat.String()
			}
		}
		rep.Rows[r] = model.ReportRow{Key: key, Cells: cells}
	}
	return rep
}
