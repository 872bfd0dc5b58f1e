package service

import (
	"fmt"

	"tabcompare-service/internal/compare/model"
	"tabcompare-service/internal/table"
)

// Run — основная сверка. Pure function of its inputs: a and b are never
// modified and repeated calls with the same arguments give the same result.
func Run(a, b table.Table, keyColumns []string, opt model.Options) (model.Result, error) {
	if err := opt.Validate(); err != nil {
		return model.Result{}, err
	}

	// 1) Нормализация имён колонок (на копиях)
	na, err := NormalizeColumns(a, opt)
	if err != nil {
		return model.Result{}, err
	}
	nb, err := NormalizeColumns(b, opt)
	if err != nil {
		return model.Result{}, err
	}

	// 2) Общие колонки и ключи
	keys := normalizeKeyColumns(keyColumns, opt)
	if len(keys) == 0 {
		return model.Result{}, model.ErrNoKeyColumns
	}
	columns, onlyA, onlyB := splitColumns(na.Columns, nb.Columns)
	if len(columns) == 0 {
		return model.Result{}, model.ErrNoCommonColumns
	}
	keyIdxA := make([]int, len(keys))
	keyIdxB := make([]int, len(keys))
	for i, k := range keys {
		keyIdxA[i], keyIdxB[i] = na.ColumnIndex(k), nb.ColumnIndex(k)
		if keyIdxA[i] < 0 || keyIdxB[i] < 0 {
			return model.Result{}, fmt.Errorf("%w: %q", model.ErrKeyColumnNotFound, k)
		}
	}

	res := model.Result{
		KeyColumns:     keys,
		Options:        opt,
		RowsA:          len(na.Rows),
		RowsB:          len(nb.Rows),
		Columns:        columns,
		ColumnsOnlyInA: onlyA,
		ColumnsOnlyInB: onlyB,
		Warnings:       make([]model.Warning, 0),
	}
	res.Warnings = append(res.Warnings, schemaWarnings(onlyA, onlyB)...)

	// 3) Индексы по ключу, дубли
	idxA := buildKeyIndex(na, keyIdxA, opt)
	idxB := buildKeyIndex(nb, keyIdxB, opt)
	res.Warnings = append(res.Warnings, keyWarnings("A", idxA, len(keys) > 1)...)
	res.Warnings = append(res.Warnings, keyWarnings("B", idxB, len(keys) > 1)...)

	// 4) Разбиение ключей
	common, inA, inB := Partition(idxA.keys, idxB.keys)
	res.Partition = model.Partition{
		Common:  keyStrings(common),
		OnlyInA: keyStrings(inA),
		OnlyInB: keyStrings(inB),
	}

	// 5) Выравнивание и сравнение ячеек
	al := align(na, nb, idxA, idxB, common, columns)
	diff, pairs := CompareCells(al, opt)

	// 6) Итоги и отчёт
	res.Diff = diff
	res.Summary = Summarize(diff)
	res.Report = BuildReport(diff, pairs)
	return res, nil
}

// splitColumns keeps A's column order for the common columns.
func splitColumns(a, b []string) (common, onlyA, onlyB []string) {
	inB := make(map[string]struct{}, len(b))
	for _, c := range b {
		inB[c] = struct{}{}
	}
	inA := make(map[string]struct{}, len(a))
	for _, c := range a {
		inA[c] = struct{}{}
		if _, ok := inB[c]; ok {
			common = append(common, c)
		} else {
			onlyA = append(onlyA, c)
		}
	}
	for _, c := range b {
		if _, ok := inA[c]; !ok {
			onlyB = append(onlyB, c)
		}
	}
	return common, onlyA, onlyB
}

func schemaWarnings(onlyA, onlyB []string) []model.Warning {
	var out []model.Warning
	if len(onlyA) > 0 {
		out = append(out, model.Warning{
			Kind:    model.WarnSchemaMismatch,
			Table:   "A",
			Message: fmt.Sprintf("%d column(s) only in the first table are not compared", len(onlyA)),
			Columns: onlyA,
		})
	}
	if len(onlyB) > 0 {
		out = append(out, model.Warning{
			Kind:    model.WarnSchemaMismatch,
			Table:   "B",
			Message: fmt.Sprintf("%d column(s) only in the second table are not compared", len(onlyB)),
			Columns: onlyB,
		})
	}
	return out
}

// A separator inside a single-column key cannot make two keys look alike.
func keyWarnings(name string, idx *keyIndex, composite bool) []model.Warning {
	var out []model.Warning
	if d := idx.duplicates(); len(d.Rows) > 0 {
		out = append(out, model.Warning{
			Kind:    model.WarnDuplicateKeys,
			Table:   name,
			Message: fmt.Sprintf("%d row(s) share duplicate key values; the first row of each key is compared", len(d.Rows)),
			Rows:    d.Rows,
			Keys:    d.Keys,
		})
	}
	if !composite {
		return out
	}
	if rows := idx.rowsWithSeparator(); len(rows) > 0 {
		out = append(out, model.Warning{
			Kind:    model.WarnKeySeparator,
			Table:   name,
			Message: fmt.Sprintf("%d row(s) have key values containing %q; their displayed keys may look alike", len(rows), KeySeparator),
			Rows:    rows,
		})
	}
	return out
}
