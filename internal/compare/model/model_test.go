package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
		ok   bool
	}{
		{"zero", 0, true},
		{"positive", 0.5, true},
		{"negative", -0.01, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Options{NumericTolerance: tt.tol}.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTolerance)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestConfigurationErrorsShareClass(t *testing.T) {
	for _, err := range []error{ErrNoKeyColumns, ErrNoCommonColumns, ErrKeyColumnNotFound, ErrInvalidTolerance, ErrDuplicateColumn} {
		assert.True(t, errors.Is(err, ErrConfiguration), err.Error())
	}
	assert.False(t, errors.Is(ErrUnknownColumn, ErrConfiguration))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "case_only", CaseOnly.Code())
	assert.Equal(t, "Case-only difference", CaseOnly.String())
	assert.Equal(t, "Significant content change", SubstantiveChange.String())
	assert.Equal(t, "no_explanation", Category(200).Code())
	assert.Equal(t, "No explanation", Category(200).String())

	b, err := json.Marshal(map[string]Category{"c": DateFormat})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"date_format"}`, string(b))
}

func TestDiffMatrixColumn(t *testing.T) {
	d := DiffMatrix{
		Columns: []string{"id", "name"},
		Keys:    []string{"1", "2"},
		Cells:   [][]bool{{false, true}, {false, false}},
	}
	assert.Equal(t, []bool{true, false}, d.Column("name"))
	assert.Nil(t, d.Column("other"))
}

func sampleReport() Report {
	return Report{
		KeyColumn: KeyColumn,
		Columns:   []string{"name", "city"},
		Rows: []ReportRow{
			{Key: "1", Cells: []Cell{
				{Value: "Ana / ana", Differs: true, Category: CaseOnly, Explanation: CaseOnly.String()},
				{Value: "Rome / Rome"},
			}},
			{Key: "2", Cells: []Cell{
				{Value: "Bob / Bob"},
				{Value: "Paris / Oslo", Differs: true, Category: SubstantiveChange, Explanation: SubstantiveChange.String()},
			}},
		},
	}
}

func TestReportSheets(t *testing.T) {
	rep := sampleReport()

	assert.Equal(t, []string{"_key", "name", "city"}, rep.MainHeader())
	assert.Equal(t, [][]string{
		{"1", "Ana / ana", "Rome / Rome"},
		{"2", "Bob / Bob", "Paris / Oslo"},
	}, rep.MainRecords())

	assert.Equal(t, []string{"_key", "name", "Explanation_name", "city", "Explanation_city"}, rep.ExplanationHeader())
	assert.Equal(t, [][]string{
		{"1", "Ana / ana", "Case-only difference", "Rome / Rome", ""},
		{"2", "Bob / Bob", "", "Paris / Oslo", "Significant content change"},
	}, rep.ExplanationRecords())
}

func TestReportFilterByColumn(t *testing.T) {
	rep := sampleReport()

	got, err := rep.FilterByColumn("city")
	require.NoError(t, err)
	assert.Equal(t, []ColumnDetail{{Key: "2", Value: "Paris / Oslo", Explanation: "Significant content change"}}, got)

	_, err = rep.FilterByColumn("Explanation_city")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestCellJSONCategory(t *testing.T) {
	b, err := json.Marshal([]Cell{
		{Value: "\xff / x", Differs: true, Category: NoExplanation, Explanation: NoExplanation.String()},
		{Value: "a / b", Differs: true, Category: CaseOnly, Explanation: CaseOnly.String()},
		{Value: "x / x"},
	})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "no_explanation", got[0]["category"])
	assert.Equal(t, "case_only", got[1]["category"])
	assert.NotContains(t, got[2], "category")
	assert.Equal(t, false, got[2]["differs"])
}

func TestResultTotalDifferences(t *testing.T) {
	r := Result{Summary: []ColumnCount{{"a", 2}, {"b", 0}, {"c", 3}}}
	assert.Equal(t, 5, r.TotalDifferences())
}
