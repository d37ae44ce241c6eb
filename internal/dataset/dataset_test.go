package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "trans_id,Total_Revenue,note\n"+
		"TRX-1,1500.5,ok\n"+
		"TRX-2,2000,\n"+
		"TRX-2,,late\n")

	ds, err := LoadCSV("sales", path)
	require.NoError(t, err)

	assert.Equal(t, "sales", ds.Name)
	assert.Equal(t, []string{"trans_id", "Total_Revenue", "note"}, ds.Columns)
	assert.Equal(t, 3, ds.Len())

	// cells are typed
	assert.Equal(t, 1500.5, ds.Rows[0]["Total_Revenue"])
	assert.Equal(t, 2000, ds.Rows[1]["Total_Revenue"])
	assert.Nil(t, ds.Rows[1]["note"])
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV("sales", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadCSVMalformedRowIsAnError(t *testing.T) {
	// unclosed quote on the second data row: the loader must error out
	// instead of returning a truncated dataset
	path := writeCSV(t, "trans_id,total_revenue\n"+
		"T1,100\n"+
		"\"T2,200\n"+
		"T3,300\n"+
		"T4,400\n")

	ds, err := LoadCSV("sales", path)
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "parse sales")
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "Total_Revenue\n100\n")
	ds, err := LoadCSV("sales", path)
	require.NoError(t, err)

	col, ok := ds.Resolve("total_revenue")
	assert.True(t, ok)
	assert.Equal(t, "Total_Revenue", col)
	assert.True(t, ds.Has("TOTAL_REVENUE"))
	assert.False(t, ds.Has("missing"))
}

func TestNullCounts(t *testing.T) {
	path := writeCSV(t, "a,b\n1,\n,2\n3,4\n")
	ds, err := LoadCSV("t", path)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.NullCount())
	assert.Equal(t, 1, ds.NullCountIn("a"))
	assert.Equal(t, 1, ds.NullCountIn("b"))
	assert.Equal(t, 0, ds.NullCountIn("missing"))
}

func TestFloatsAndSum(t *testing.T) {
	path := writeCSV(t, "v\n10\n2.5\n\nabc\n")
	ds, err := LoadCSV("t", path)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 2.5}, ds.Floats("v"))
	assert.Equal(t, 12.5, ds.Sum("v"))
}

func TestDuplicateAndDistinctCounts(t *testing.T) {
	path := writeCSV(t, "id\nA\nB\nA\nA\n")
	ds, err := LoadCSV("t", path)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.DuplicateCount("id"))
	assert.Equal(t, 2, ds.DistinctCount("id"))
}

func TestMinMaxString(t *testing.T) {
	path := writeCSV(t, "date\n2024-03-01\n2024-01-15\n2024-12-31\n")
	ds, err := LoadCSV("t", path)
	require.NoError(t, err)

	min, max := ds.MinMaxString("date")
	assert.Equal(t, "2024-01-15", min)
	assert.Equal(t, "2024-12-31", max)
}

func TestCountWhereAndFloat(t *testing.T) {
	path := writeCSV(t, "Revenue\n100\n-5\n0\n200\n")
	ds, err := LoadCSV("t", path)
	require.NoError(t, err)

	invalid := ds.CountWhere(func(rec Record) bool {
		v, ok := ds.Float(rec, "revenue")
		return ok && v <= 0
	})
	assert.Equal(t, 2, invalid)
}
