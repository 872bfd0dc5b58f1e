// Package export writes a comparison report as a two-sheet workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"tabcompare-service/internal/compare/model"
)

const (
	ComparisonSheet   = "Comparison"
	ExplanationsSheet = "Explanations"
	HighlightColor    = "#FFFF00"
	ContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Build creates the workbook:
//   - Comparison: key column first, then the data columns; cells with an
//     explanation are highlighted.
//   - Explanations: key column first, every data column followed by its
//     explanation column.
func Build(rep model.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// лист по умолчанию переименовываем, а не создаём новый
	if err := f.SetSheetName(f.GetSheetName(0), ComparisonSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ExplanationsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create highlight style: %w", err)
	}

	if err := writeSheet(f, ComparisonSheet, rep.MainHeader(), rep.MainRecords(), headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSheet(f, ExplanationsSheet, rep.ExplanationHeader(), rep.ExplanationRecords(), headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	// Подсветка: в столбце 1 ключ, данные начинаются со второго
	for r, row := range rep.Rows {
		for c, cell := range row.Cells {
			if cell.Explanation == "" {
				continue
			}
			name, _ := excelize.CoordinatesToCellName(c+2, r+2)
			if err := f.SetCellStyle(ComparisonSheet, name, name, highlight); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to highlight %s: %w", name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, records [][]string, headerStyle int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	for i, rec := range records {
		if err := setRow(f, sheet, i+2, rec); err != nil {
			return err
		}
	}
	for i := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, 20)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

// WriteXLSX streams the workbook to w.
func WriteXLSX(w io.Writer, rep model.Report) error {
	f, err := Build(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, rep model.Report) error {
	f, err := Build(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
