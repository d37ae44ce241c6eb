package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
)

func TestCheckSalesNulls(t *testing.T) {
	clean := ds("sales", []string{"trans_id", "total_revenue"},
		dataset.Record{"trans_id": "T1", "total_revenue": 100},
	)
	res := checkSalesNulls(clean)
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "Sales data has no null values", res.Message)

	dirty := ds("sales", []string{"trans_id", "total_revenue"},
		dataset.Record{"trans_id": "T1", "total_revenue": nil},
	)
	res = checkSalesNulls(dirty)
	assert.Equal(t, model.StatusFail, res.Status)
}

func TestCheckDuplicateTransactions(t *testing.T) {
	unique := ds("sales", []string{"trans_id"},
		dataset.Record{"trans_id": "T1"},
		dataset.Record{"trans_id": "T2"},
	)
	res := checkDuplicateTransactions(unique)
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "All transaction IDs are unique", res.Message)

	// legacy exports carry sale_id instead of trans_id
	legacy := ds("sales", []string{"sale_id"},
		dataset.Record{"sale_id": "S1"},
		dataset.Record{"sale_id": "S1"},
	)
	res = checkDuplicateTransactions(legacy)
	assert.Equal(t, model.StatusFail, res.Status)
	assert.Contains(t, res.Message, "1 duplicate transaction IDs")
}

func TestCheckRevenueValidity(t *testing.T) {
	valid := ds("sales", []string{"total_revenue"},
		dataset.Record{"total_revenue": 150.0},
		dataset.Record{"total_revenue": 20},
	)
	res := checkRevenueValidity(valid)
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "No zero/negative revenues in original data", res.Message)

	invalid := ds("sales", []string{"total_revenue"},
		dataset.Record{"total_revenue": 0},
		dataset.Record{"total_revenue": -3},
		dataset.Record{"total_revenue": 10},
	)
	res = checkRevenueValidity(invalid)
	assert.Equal(t, model.StatusFail, res.Status)
	assert.Contains(t, res.Message, "2 transactions with invalid revenue")
}

func TestCheckRevenueOutliers(t *testing.T) {
	// 100 tight values: no outliers at Q3 + 3×IQR
	rows := make([]dataset.Record, 0, 100)
	for i := 0; i < 100; i++ {
		rows = append(rows, dataset.Record{"total_revenue": 100 + i})
	}
	res := checkRevenueOutliers(ds("sales", []string{"total_revenue"}, rows...))
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "Revenue outliers within acceptable range (<5%)", res.Message)

	res = checkRevenueOutliers(ds("sales", []string{"total_revenue"}))
	assert.Equal(t, model.StatusFail, res.Status)
}

func TestCheckUnitCostComplete(t *testing.T) {
	complete := ds("products", []string{"unit_cost"},
		dataset.Record{"unit_cost": 50},
	)
	res := checkUnitCostComplete(complete)
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "All products have unit cost defined", res.Message)

	incomplete := ds("products", []string{"unit_cost"},
		dataset.Record{"unit_cost": nil},
		dataset.Record{"unit_cost": 50},
	)
	res = checkUnitCostComplete(incomplete)
	assert.Equal(t, model.StatusFail, res.Status)
	assert.Contains(t, res.Message, "1 products missing unit cost")
}

func TestCheckPricingMargin(t *testing.T) {
	healthy := ds("products", []string{"unit_cost", "unit_price"},
		dataset.Record{"unit_cost": 50, "unit_price": 80},
	)
	res := checkPricingMargin(healthy)
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "All products have price > cost", res.Message)

	upsideDown := ds("products", []string{"unit_cost", "unit_price"},
		dataset.Record{"unit_cost": 90, "unit_price": 80},
	)
	res = checkPricingMargin(upsideDown)
	assert.Equal(t, model.StatusFail, res.Status)
	assert.Contains(t, res.Message, "negative margin")
}

func TestCheckReviewText(t *testing.T) {
	full := ds("reviews", []string{"review_text"},
		dataset.Record{"review_text": "great product"},
	)
	res := checkReviewText(full)
	assert.Equal(t, model.StatusPass, res.Status)
	assert.Equal(t, "No missing review text", res.Message)

	sparse := ds("reviews", []string{"review_text"},
		dataset.Record{"review_text": nil},
		dataset.Record{"review_text": "fine"},
	)
	res = checkReviewText(sparse)
	assert.Equal(t, model.StatusWarning, res.Status)
	assert.Equal(t, "1 reviews missing text", res.Message)
}

func TestSalesRulesCount(t *testing.T) {
	// the source registries contribute 7 of the 23 checks
	total := len(SalesRules()) + len(ProductRules()) + len(ReviewRules())
	assert.Equal(t, 7, total, fmt.Sprintf("source registries changed size: %d", total))
}
