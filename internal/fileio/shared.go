package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tabcompare-service/internal/table"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file")
	ErrSheetNotFound   = errors.New("sheet not found")
	ErrEmptyFile       = errors.New("file has no rows")
	ErrHeaderRow       = errors.New("header row out of range")
)

// ReadOptions select what part of a file becomes the table.
type ReadOptions struct {
	Sheet        string // empty → first sheet; ignored for CSV
	HeaderRow    int    // 1-based, 0 → 1
	DecimalComma bool   // accept "1 234,50" as a number
}

// ReadTable — выберет парсер по расширению и вернёт типизированную таблицу.
func ReadTable(r io.Reader, filename string, opts ReadOptions) (table.Table, error) {
	if opts.HeaderRow <= 0 {
		opts.HeaderRow = 1
	}
	var (
		rows [][]string
		err  error
	)
	switch ext(filename) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r, opts.Sheet)
	case ".xls":
		rows, err = readXLS(r, opts.Sheet)
	case ".csv", ".txt":
		rows, err = readCSV(r)
	default:
		return table.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
	if err != nil {
		return table.Table{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return table.Table{}, fmt.Errorf("read %s: %w", filename, ErrEmptyFile)
	}
	if opts.HeaderRow > len(rows) {
		return table.Table{}, fmt.Errorf("read %s: %w: %d of %d rows", filename, ErrHeaderRow, opts.HeaderRow, len(rows))
	}
	h := pickHeader(rows, opts.HeaderRow)
	return table.FromRecords(tableName(filename, opts.Sheet), h, dataRows(rows, opts.HeaderRow), opts.DecimalComma), nil
}

// SheetNames lists the sheets of a workbook; CSV files have none.
func SheetNames(r io.Reader, filename string) ([]string, error) {
	switch ext(filename) {
	case ".xlsx", ".xlsm":
		return xlsxSheets(r)
	case ".xls":
		return xlsSheets(r)
	case ".csv", ".txt":
		return []string{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}

func ext(filename string) string { return strings.ToLower(filepath.Ext(filename)) }

func tableName(filename, sheet string) string {
	name := filepath.Base(filename)
	if sheet != "" {
		name += ":" + sheet
	}
	return name
}

func readAllBytes(r io.Reader) (*bytes.Reader, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// pickHeader — берёт строку заголовков (headerRow уже проверен) и подставляет Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	h := rows[idx]
	out := make([]string, width)
	for i := range out {
		v := ""
		if i < len(h) {
			v = strings.TrimSpace(h[i])
		}
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// dataRows returns the rows below the header, skipping fully empty ones.
func dataRows(rows [][]string, headerRow int) [][]string {
	var out [][]string
	for r := headerRow; r < len(rows); r++ {
		empty := true
		for _, v := range rows[r] {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, rows[r])
		}
	}
	return out
}
