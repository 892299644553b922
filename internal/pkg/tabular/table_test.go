package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ShortRowsReadAsEmptyCells(t *testing.T) {
	data := []byte("id,name,zone\n1,Ana\n2,Bo,E,extra\n")

	table, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0]["zone"])
	assert.Equal(t, "E", table.Rows[1]["zone"])
	// Cells beyond the header are dropped
	assert.Equal(t, []string{"id", "name", "zone"}, table.Columns)
}

func TestDecode_EmptyContentIsAParseFailure(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)
}

func TestEnsureColumns_CompletesMissingAndKeepsExtras(t *testing.T) {
	table, err := Decode([]byte("id,nickname\n1,Ace\n"))
	require.NoError(t, err)

	table.EnsureColumns([]string{"id", "name", "zone"})

	assert.Equal(t, []string{"id", "nickname", "name", "zone"}, table.Columns)
	assert.Equal(t, "Ace", table.Rows[0]["nickname"])
	assert.Equal(t, "", table.Rows[0]["name"])
	assert.Equal(t, "", table.Rows[0]["zone"])
}

func TestEncode_RoundTripsUnknownColumns(t *testing.T) {
	table, err := Decode([]byte("id,legacy_flag\n1,x\n"))
	require.NoError(t, err)
	table.EnsureColumns([]string{"id", "name"})

	out, err := table.Encode()
	require.NoError(t, err)

	reread, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "x", reread.Rows[0]["legacy_flag"])
	assert.Equal(t, "", reread.Rows[0]["name"])
}

func TestAppend_FillsCellsForUnsetColumns(t *testing.T) {
	table := New([]string{"id", "name", "zone"})
	table.Append(Row{"id": "1", "name": "Ana"})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["zone"])
}

func TestDelete_ReportsRemovedCount(t *testing.T) {
	table := New([]string{"id"})
	table.Append(Row{"id": "1"})
	table.Append(Row{"id": "2"})
	table.Append(Row{"id": "1"})

	removed := table.Delete(func(r Row) bool { return r["id"] == "1" })

	assert.Equal(t, 2, removed)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2", table.Rows[0]["id"])
}

func TestFind_ReturnsNilWhenAbsent(t *testing.T) {
	table := New([]string{"id"})
	table.Append(Row{"id": "1"})

	assert.Nil(t, table.Find(func(r Row) bool { return r["id"] == "9" }))
	assert.NotNil(t, table.Find(func(r Row) bool { return r["id"] == "1" }))
}

func TestRow_MissingColumnReadsEmpty(t *testing.T) {
	row := Row{"id": "1"}
	assert.Equal(t, "", row["anything"])
}
