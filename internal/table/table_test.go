package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecordsTyping(t *testing.T) {
	tbl := FromRecords("a.csv",
		[]string{"id", "name", "amount", "blank"},
		[][]string{
			{"1", "Ana", "10.5", ""},
			{"2", "", "x"},
		},
		false,
	)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []Kind{Number, Text, Text, Text}, tbl.Kinds)

	assert.Equal(t, ParsedNumber("1", 1), tbl.Rows[0][0])
	assert.Equal(t, TextValue("Ana"), tbl.Rows[0][1])
	assert.Equal(t, TextValue("10.5"), tbl.Rows[0][2], "a column with one non-number is text")
	assert.True(t, tbl.Rows[1][1].IsMissing())
	assert.True(t, tbl.Rows[1][3].IsMissing(), "short records are padded with missing values")
}

func TestFromRecordsDecimalComma(t *testing.T) {
	tbl := FromRecords("a.csv", []string{"qty"}, [][]string{{"1 234,5"}, {"2"}}, true)
	assert.Equal(t, Number, tbl.Kinds[0])
	assert.InDelta(t, 1234.5, tbl.Rows[0][0].Num, 1e-12)
	assert.Equal(t, "1 234,5", tbl.Rows[0][0].String())
}

func TestFromRecordsKeepsNumberText(t *testing.T) {
	tbl := FromRecords("a.csv", []string{"id", "amount"}, [][]string{{"007", "1.00"}, {"008", "1.50"}}, false)
	require.Equal(t, []Kind{Number, Number}, tbl.Kinds)

	assert.Equal(t, "007", tbl.Rows[0][0].String())
	assert.Equal(t, "1.00", tbl.Rows[0][1].String())
	assert.Equal(t, "1.50", tbl.Rows[1][1].String())
	assert.InDelta(t, 1.5, tbl.Rows[1][1].Num, 1e-12)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "1.5", NumberValue(1.5).String())
	assert.Equal(t, "3", NumberValue(3).String())
	assert.Equal(t, " x ", TextValue(" x ").String())
	assert.Equal(t, MissingText, MissingValue().String())
	assert.NotEqual(t, TextValue("").String(), MissingValue().String(), "missing is never the empty string")
}

func TestValueJSON(t *testing.T) {
	b, err := json.Marshal([]Value{NumberValue(2), TextValue("a"), MissingValue()})
	require.NoError(t, err)
	assert.JSONEq(t, `[2, "a", null]`, string(b))
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Table{
		Columns: []string{"ID"},
		Kinds:   []Kind{Text},
		Rows:    []Row{{TextValue("x")}},
	}
	c := orig.Clone()
	c.Columns[0] = "id"
	c.Rows[0][0] = TextValue("y")

	assert.Equal(t, "ID", orig.Columns[0])
	assert.Equal(t, "x", orig.Rows[0][0].Str)
}

func TestGetOutOfRange(t *testing.T) {
	tbl := Table{Columns: []string{"a"}, Rows: []Row{{TextValue("v")}}}
	assert.True(t, tbl.Get(5, 0).IsMissing())
	assert.True(t, tbl.Get(0, 3).IsMissing())
	assert.Equal(t, -1, tbl.ColumnIndex("nope"))
}
