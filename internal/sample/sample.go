// Package sample generates pairs of related tables for trying the comparison
// out: the second table is the first one with a share of rows perturbed.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var Header = []string{"id", "name", "company", "city", "amount", "date"}

type Options struct {
	Rows     int     // rows of the first table
	Seed     int64   // 0 → random
	DiffRate float64 // share of rows changed in the second table, 0..1
}

// Perturbation is what was done to a row of the second table.
type Perturbation string

const (
	Unchanged  Perturbation = "unchanged"
	Case       Perturbation = "case"
	Whitespace Perturbation = "whitespace"
	Amount     Perturbation = "amount"
	DateFormat Perturbation = "date_format"
	NameSuffix Perturbation = "name_suffix"
	Replaced   Perturbation = "replaced"
	Dropped    Perturbation = "dropped"
)

var changes = []Perturbation{Case, Whitespace, Amount, DateFormat, NameSuffix, Replaced, Dropped}

// Pair is a generated table pair. Changes is keyed by id.
type Pair struct {
	A, B    [][]string // header first
	Changes map[string]Perturbation
	Added   []string // ids present only in B
}

func Generate(opt Options) Pair {
	if opt.Rows <= 0 {
		opt.Rows = 100
	}
	if opt.DiffRate < 0 || opt.DiffRate > 1 {
		opt.DiffRate = 0.2
	}
	f := gofakeit.New(opt.Seed)

	p := Pair{
		A:       [][]string{append([]string(nil), Header...)},
		B:       [][]string{append([]string(nil), Header...)},
		Changes: make(map[string]Perturbation, opt.Rows),
	}
	for i := 1; i <= opt.Rows; i++ {
		row := fakeRow(f, strconv.Itoa(i))
		p.A = append(p.A, row)

		kind := Unchanged
		if f.Float64() < opt.DiffRate {
			kind = changes[f.Number(0, len(changes)-1)]
		}
		p.Changes[row[0]] = kind
		if kind == Dropped {
			continue
		}
		p.B = append(p.B, perturb(f, row, kind))
	}

	// строки, которых нет в первой таблице
	extra := opt.Rows / 20
	for i := 1; i <= extra; i++ {
		id := strconv.Itoa(opt.Rows + i)
		p.B = append(p.B, fakeRow(f, id))
		p.Added = append(p.Added, id)
	}
	return p
}

func fakeRow(f *gofakeit.Faker, id string) []string {
	return []string{
		id,
		f.Name(),
		f.Company(),
		f.City(),
		strconv.FormatFloat(float64(f.Number(100, 999999))/100, 'f', 2, 64),
		f.Date().Format("02/01/2006"),
	}
}

func perturb(f *gofakeit.Faker, row []string, kind Perturbation) []string {
	out := append([]string(nil), row...)
	switch kind {
	case Case:
		out[1] = strings.ToUpper(out[1])
	case Whitespace:
		out[2] = "  " + strings.ReplaceAll(out[2], " ", "  ") + " "
	case Amount:
		v, _ := strconv.ParseFloat(out[4], 64)
		out[4] = strconv.FormatFloat(v+float64(f.Number(1, 500)), 'f', 2, 64)
	case DateFormat:
		parts := strings.Split(out[5], "/")
		out[5] = parts[2] + "/" + parts[1] + "/" + parts[0]
	case NameSuffix:
		out[1] += " " + f.RandomString([]string{"Jr", "Sr", "II", "PhD"})
	case Replaced:
		// индекс вместо города
		out[3] = f.Zip()
	}
	return out
}

// WriteCSV writes records with a comma delimiter.
func WriteCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
