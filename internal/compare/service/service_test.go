package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"tabcompare-service/internal/compare/model"
	"tabcompare-service/internal/sample"
	"tabcompare-service/internal/table"
)

func tbl(name string, cols []string, rows ...[]string) table.Table {
	return table.FromRecords(name, cols, rows, false)
}

func TestRunNameScenarios(t *testing.T) {
	a := tbl("a", []string{"id", "name"}, []string{"1", "Ana Ruiz"})
	b := tbl("b", []string{"id", "name"}, []string{"1", "ana  ruiz"})

	t.Run("case and whitespace ignored", func(t *testing.T) {
		res, err := Run(a, b, []string{"id"}, model.Options{IgnoreCase: true, IgnoreWhitespace: true})
		require.NoError(t, err)
		assert.Equal(t, []model.ColumnCount{{Column: "id"}, {Column: "name"}}, res.Summary)
		assert.Equal(t, 0, res.TotalDifferences())
	})

	t.Run("whitespace not ignored", func(t *testing.T) {
		res, err := Run(a, b, []string{"id"}, model.Options{IgnoreCase: true})
		require.NoError(t, err)
		assert.Equal(t, []model.ColumnCount{{Column: "id"}, {Column: "name", Differences: 1}}, res.Summary)

		details, err := res.Report.FilterByColumn("name")
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "1", details[0].Key)
		assert.Equal(t, "Ana Ruiz / ana  ruiz", details[0].Value)
		assert.Equal(t, model.WhitespaceOnly.String(), details[0].Explanation)
	})
}

func TestRunCaseInsensitiveColumns(t *testing.T) {
	a := tbl("a", []string{"ID", "Name"}, []string{"1", "x"})
	b := tbl("b", []string{"id", "name"}, []string{"1", "x"})

	res, err := Run(a, b, []string{"Id"}, model.Options{IgnoreCase: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	assert.Equal(t, []string{"id"}, res.KeyColumns)
	assert.Empty(t, res.ColumnsOnlyInA)
	assert.Equal(t, "ID", a.Columns[0], "input table is not modified")

	_, err = Run(a, b, []string{"id"}, model.Options{})
	assert.ErrorIs(t, err, model.ErrNoCommonColumns)
}

func TestRunNumericTolerance(t *testing.T) {
	a := tbl("a", []string{"id", "amount"}, []string{"1", "1.00"}, []string{"2", "1.00"})
	b := tbl("b", []string{"id", "amount"}, []string{"1", "1.01"}, []string{"2", "1.02"})

	res, err := Run(a, b, []string{"id"}, model.Options{NumericTolerance: 0.01})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, res.Diff.Column("amount"))
	assert.Equal(t, "1.00 / 1.02", res.Report.Rows[1].Cells[1].Value, "pairs keep the uploaded text")
	assert.Equal(t, model.NumericOrFormat, res.Report.Rows[1].Cells[1].Category)
}

func TestRunReportKeepsNumberText(t *testing.T) {
	a := tbl("a", []string{"id", "amount"}, []string{"1", "1.00"})
	b := tbl("b", []string{"id", "amount"}, []string{"1", "1.50"})

	res, err := Run(a, b, []string{"id"}, model.Options{})
	require.NoError(t, err)

	details, err := res.Report.FilterByColumn("amount")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "1.00 / 1.50", details[0].Value)
}

func TestRunMixedKindKeyColumn(t *testing.T) {
	// в A колонка id целиком числовая, в B текстовая
	a := tbl("a", []string{"id", "v"}, []string{"007", "x"}, []string{"008", "y"})
	b := tbl("b", []string{"id", "v"}, []string{"007", "x"}, []string{"A09", "z"})
	require.Equal(t, table.Number, a.Kinds[0])
	require.Equal(t, table.Text, b.Kinds[0])

	res, err := Run(a, b, []string{"id"}, model.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"007"}, res.Partition.Common)
	assert.Equal(t, []string{"008"}, res.Partition.OnlyInA)
	assert.Equal(t, []string{"A09"}, res.Partition.OnlyInB)
	assert.Equal(t, 0, res.TotalDifferences())
}

func TestRunDuplicateKeys(t *testing.T) {
	a := tbl("a", []string{"id", "v"}, []string{"1", "first"}, []string{"1", "second"}, []string{"2", "x"})
	b := tbl("b", []string{"id", "v"}, []string{"1", "first"}, []string{"2", "y"})

	res, err := Run(a, b, []string{"id"}, model.Options{})
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	w := res.Warnings[0]
	assert.Equal(t, model.WarnDuplicateKeys, w.Kind)
	assert.Equal(t, "A", w.Table)
	assert.Equal(t, []int{0, 1}, w.Rows)
	assert.Equal(t, []string{"1"}, w.Keys)

	// the first row of a duplicated key is the one compared
	assert.Equal(t, []string{"1", "2"}, res.Partition.Common)
	assert.Equal(t, []bool{false, true}, res.Diff.Column("v"))
}

func TestRunPartitionAndSchema(t *testing.T) {
	a := tbl("a", []string{"id", "name", "only_a"},
		[]string{"1", "x", "p"}, []string{"2", "y", "q"}, []string{"3", "z", "r"})
	b := tbl("b", []string{"id", "name", "only_b"},
		[]string{"2", "y", "s"}, []string{"3", "Z", "t"}, []string{"4", "w", "u"}, []string{"5", "v", "w"})

	res, err := Run(a, b, []string{"id"}, model.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "3"}, res.Partition.Common)
	assert.Equal(t, []string{"1"}, res.Partition.OnlyInA)
	assert.Equal(t, []string{"4", "5"}, res.Partition.OnlyInB)
	assert.Equal(t, 3, len(res.Partition.OnlyInA)+len(res.Partition.Common))
	assert.Equal(t, 4, len(res.Partition.OnlyInB)+len(res.Partition.Common))

	assert.Equal(t, []string{"id", "name"}, res.Columns)
	assert.Equal(t, []string{"only_a"}, res.ColumnsOnlyInA)
	assert.Equal(t, []string{"only_b"}, res.ColumnsOnlyInB)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, model.WarnSchemaMismatch, res.Warnings[0].Kind)
	assert.Equal(t, []string{"only_a"}, res.Warnings[0].Columns)
	assert.Equal(t, []string{"only_b"}, res.Warnings[1].Columns)

	assert.Equal(t, []string{"2", "3"}, res.Diff.Keys)
	assert.Equal(t, []bool{false, true}, res.Diff.Column("name"))
	assert.Equal(t, model.CaseOnly, res.Report.Rows[1].Cells[1].Category)
}

func TestRunCompositeKeyWithSeparator(t *testing.T) {
	cols := []string{"a", "b", "v"}
	a := tbl("a", cols, []string{"x-y", "z", "1"}, []string{"x", "y-z", "2"})
	b := tbl("b", cols, []string{"x", "y-z", "2"}, []string{"x-y", "z", "1"})

	res, err := Run(a, b, []string{"a", "b"}, model.Options{})
	require.NoError(t, err)

	assert.Len(t, res.Partition.Common, 2, "keys that only look alike stay distinct")
	assert.Empty(t, res.Partition.OnlyInA)
	assert.Equal(t, 0, res.TotalDifferences())

	kinds := make([]model.WarningKind, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Equal(t, []model.WarningKind{model.WarnKeySeparator, model.WarnKeySeparator}, kinds)
	assert.Equal(t, []int{0, 1}, res.Warnings[0].Rows)
}

func TestRunConfigurationErrors(t *testing.T) {
	a := tbl("a", []string{"id", "v"}, []string{"1", "x"})
	b := tbl("b", []string{"id", "w"}, []string{"1", "x"})
	c := tbl("c", []string{"x"}, []string{"1"})
	dup := tbl("d", []string{"Id", "ID"}, []string{"1", "2"})

	tests := []struct {
		name   string
		a, b   table.Table
		keys   []string
		opt    model.Options
		target error
	}{
		{"no keys", a, b, nil, model.Options{}, model.ErrNoKeyColumns},
		{"blank keys", a, b, []string{" ", ""}, model.Options{}, model.ErrNoKeyColumns},
		{"no common columns", a, c, []string{"id"}, model.Options{}, model.ErrNoCommonColumns},
		{"key only in one table", a, b, []string{"v"}, model.Options{}, model.ErrKeyColumnNotFound},
		{"negative tolerance", a, b, []string{"id"}, model.Options{NumericTolerance: -1}, model.ErrInvalidTolerance},
		{"nan tolerance", a, b, []string{"id"}, model.Options{NumericTolerance: math.NaN()}, model.ErrInvalidTolerance},
		{"columns collide after lower-casing", dup, a, []string{"id"}, model.Options{IgnoreCase: true}, model.ErrDuplicateColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.a, tt.b, tt.keys, tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.True(t, errors.Is(err, model.ErrConfiguration))
		})
	}
}

// RunPropertiesSuite checks properties that must hold for any input.
type RunPropertiesSuite struct {
	suite.Suite
	a, b table.Table
	opt  model.Options
}

func (s *RunPropertiesSuite) SetupTest() {
	cols := []string{"id", "name", "city", "amount"}
	s.a = tbl("a", cols,
		[]string{"1", "Acme Corp", "Rome", "10"},
		[]string{"2", "Beta", "Paris", "20.5"},
		[]string{"3", "Gamma", "01/02/2020", "7"},
		[]string{"4", "Delta", "", "1"},
	)
	s.b = tbl("b", cols,
		[]string{"3", "gamma ", "2020/02/01", "7.001"},
		[]string{"2", "Beta", "London", "20.5"},
		[]string{"1", "ACME", "Rome", "10"},
		[]string{"5", "Epsilon", "Oslo", "2"},
	)
	s.opt = model.Options{NumericTolerance: 0.01}
}

func (s *RunPropertiesSuite) TestIdempotent() {
	first, err := Run(s.a, s.b, []string{"id"}, s.opt)
	s.Require().NoError(err)
	second, err := Run(s.a, s.b, []string{"id"}, s.opt)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *RunPropertiesSuite) TestEqualCellsHaveNoExplanation() {
	res, err := Run(s.a, s.b, []string{"id"}, s.opt)
	s.Require().NoError(err)
	s.Require().Len(res.Report.Rows, len(res.Diff.Cells))
	for r, row := range res.Report.Rows {
		for c, cell := range row.Cells {
			s.Equal(res.Diff.Cells[r][c], cell.Differs)
			if !res.Diff.Cells[r][c] {
				s.Empty(cell.Explanation, "row %d col %d", r, c)
			} else {
				s.NotEmpty(cell.Explanation, "row %d col %d", r, c)
			}
		}
	}
}

func (s *RunPropertiesSuite) TestExpectedExplanations() {
	res, err := Run(s.a, s.b, []string{"id"}, s.opt)
	s.Require().NoError(err)

	s.Equal([]string{"1", "2", "3"}, res.Partition.Common)
	s.Equal([]model.ColumnCount{
		{Column: "id", Differences: 0},
		{Column: "name", Differences: 2},
		{Column: "city", Differences: 2},
		{Column: "amount", Differences: 0},
	}, res.Summary)

	name, err := res.Report.FilterByColumn("name")
	s.Require().NoError(err)
	s.Require().Len(name, 2)
	s.Equal(model.SimilarName.String(), name[0].Explanation)
	s.Equal(model.CaseOnly.String(), name[1].Explanation)

	city, err := res.Report.FilterByColumn("city")
	s.Require().NoError(err)
	s.Require().Len(city, 2)
	s.Equal(model.SubstantiveChange.String(), city[0].Explanation)
	s.Equal(model.DateFormat.String(), city[1].Explanation)

	_, err = res.Report.FilterByColumn("missing")
	s.ErrorIs(err, model.ErrUnknownColumn)
}

func (s *RunPropertiesSuite) TestInputsUntouched() {
	before := s.a.Clone()
	_, err := Run(s.a, s.b, []string{"ID"}, model.Options{IgnoreCase: true})
	s.Require().NoError(err)
	s.Equal(before, s.a)
}

func TestRunProperties(t *testing.T) {
	suite.Run(t, new(RunPropertiesSuite))
}

func TestRunGeneratedTables(t *testing.T) {
	p := sample.Generate(sample.Options{Rows: 300, Seed: 11, DiffRate: 0.4})
	a := table.FromRecords("a", p.A[0], p.A[1:], false)
	b := table.FromRecords("b", p.B[0], p.B[1:], false)

	res, err := Run(a, b, []string{"id"}, model.Options{IgnoreCase: true, IgnoreWhitespace: true})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	onlyA := make(map[string]bool)
	for _, k := range res.Partition.OnlyInA {
		onlyA[k] = true
	}
	assert.Equal(t, p.Added, res.Partition.OnlyInB)
	assert.Equal(t, len(a.Rows), len(res.Partition.Common)+len(res.Partition.OnlyInA))

	for r, key := range res.Diff.Keys {
		kind := p.Changes[key]
		differs := false
		for _, d := range res.Diff.Cells[r] {
			differs = differs || d
		}
		switch kind {
		case sample.Unchanged, sample.Case, sample.Whitespace:
			assert.False(t, differs, "key %s (%s)", key, kind)
		default:
			assert.True(t, differs, "key %s (%s)", key, kind)
		}
	}
	for key, kind := range p.Changes {
		assert.Equal(t, kind == sample.Dropped, onlyA[key], key)
	}

	amount, err := res.Report.FilterByColumn("amount")
	require.NoError(t, err)
	for _, d := range amount {
		assert.Equal(t, sample.Amount, p.Changes[d.Key])
		assert.Equal(t, model.NumericOrFormat.String(), d.Explanation)
	}
	dates, err := res.Report.FilterByColumn("date")
	require.NoError(t, err)
	for _, d := range dates {
		assert.Equal(t, model.DateFormat.String(), d.Explanation)
	}
}
