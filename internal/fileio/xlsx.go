package fileio

import (
	"fmt"
	"io"
	"slices"

	excelize "github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	br, err := readAllBytes(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(br)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return f.GetRows(sheet)
}

func xlsxSheets(r io.Reader) ([]string, error) {
	br, err := readAllBytes(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(br)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
