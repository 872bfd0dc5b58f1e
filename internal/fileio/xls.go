// Надёжный парсер .xls: фиксируем ширину таблицы сами и читаем все ячейки до неё.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xls "github.com/extrame/xls"
)

// вычисляем "реальную" ширину: пробегаем разумное число колонок и ищем непустые
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 512
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := maxCols; j < probeMax; j++ {
			if normalizeCell(r.Col(j)) != "" {
				maxCols = j + 1
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func normalizeCell(s string) string {
	return strings.TrimRight(strings.ReplaceAll(s, "\u00A0", " "), " ")
}

func openXLS(r io.Reader) (*xls.WorkBook, error) {
	br, err := readAllBytes(r)
	if err != nil {
		return nil, err
	}
	// .xls из 1С чаще всего cp1251, но иногда UTF-8/KOI8-R
	var lastErr error
	for _, ch := range []string{"windows-1251", "utf-8", "koi8-r"} {
		if _, err := br.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		wb, err := xls.OpenReader(br, ch)
		if err == nil && wb != nil {
			return wb, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("xls: failed to open workbook")
	}
	return nil, lastErr
}

func readXLS(r io.Reader, sheetName string) ([][]string, error) {
	wb, err := openXLS(r)
	if err != nil {
		return nil, err
	}

	var sheet *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		s := wb.GetSheet(i)
		if s != nil && (sheetName == "" || s.Name == sheetName) {
			sheet = s
			break
		}
	}
	if sheet == nil {
		if sheetName != "" {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
		}
		return nil, nil
	}

	// фиксируем ширину и читаем все строки до неё (НЕ полагаемся на Row.LastCol())
	maxCols := computeMaxCols(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = normalizeCell(row.Col(j))
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func xlsSheets(r io.Reader) ([]string, error) {
	wb, err := openXLS(r)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil {
			names = append(names, s.Name)
		}
	}
	return names, nil
}
