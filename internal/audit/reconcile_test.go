package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dq-audit/internal/model"
)

// fakeCounter serves canned row counts; tables not in the map error out
// like a missing warehouse table.
type fakeCounter struct {
	counts map[string]int64
}

func (f *fakeCounter) TableRowCount(_ context.Context, table string) (int64, error) {
	n, ok := f.counts[table]
	if !ok {
		return 0, fmt.Errorf("no such table: %s", table)
	}
	return n, nil
}

func matchedCounts() map[string]int64 {
	return map[string]int64{
		"Dim_Customer": 1500,
		"Dim_Date":     365,
		"Dim_Product":  120,
		"Dim_Store":    12,
		"Fact_Sales":   24629,
	}
}

func TestReconcileAllMatch(t *testing.T) {
	counts := matchedCounts()
	counter := &fakeCounter{counts: counts}

	entries, results := Reconcile(context.Background(), counter, counts)
	require.Len(t, entries, 5)
	require.Len(t, results, 5)

	// report order is fixed
	assert.Equal(t, "Dim_Customer", entries[0].Table)
	assert.Equal(t, "Fact_Sales", entries[4].Table)

	for _, res := range results {
		assert.Equal(t, model.StatusPass, res.Status)
	}
	assert.Equal(t, "db_integrity_Fact_Sales", results[4].Name)
	assert.Equal(t, "Fact_Sales: CSV and DB match (24,629 rows)", results[4].Message)
}

func TestReconcileMismatch(t *testing.T) {
	csvCounts := matchedCounts()
	dbCounts := matchedCounts()
	dbCounts["Fact_Sales"] = 1095

	entries, results := Reconcile(context.Background(), &fakeCounter{counts: dbCounts}, csvCounts)

	last := entries[4]
	assert.Equal(t, int64(24629), last.CSVRows)
	assert.Equal(t, int64(1095), last.DBRows)
	assert.False(t, last.Match)

	assert.Equal(t, model.StatusFail, results[4].Status)
	assert.Equal(t, "Fact_Sales: CSV (24,629) != DB (1,095)", results[4].Message)

	// the other four still pass: a mismatch never aborts reconciliation
	for _, res := range results[:4] {
		assert.Equal(t, model.StatusPass, res.Status)
	}
}

func TestReconcileMissingTableReadsAsZero(t *testing.T) {
	csvCounts := matchedCounts()
	dbCounts := matchedCounts()
	delete(dbCounts, "Dim_Store")

	entries, results := Reconcile(context.Background(), &fakeCounter{counts: dbCounts}, csvCounts)

	store := entries[3]
	assert.Equal(t, "Dim_Store", store.Table)
	assert.Equal(t, int64(0), store.DBRows)
	assert.False(t, store.Match)
	assert.Equal(t, model.StatusFail, results[3].Status)
}
