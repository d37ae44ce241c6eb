package audit

import (
	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
	"dq-audit/pkg/utils"
)

// Fixed registries of named checks over the extracted source datasets.
// Thresholds follow the warehouse team's quality contract: see each check.

func SalesRules() []Rule {
	return []Rule{
		{Name: "sales_null_values", Check: checkSalesNulls},
		{Name: "sales_duplicate_transactions", Check: checkDuplicateTransactions},
		{Name: "sales_revenue_validity", Check: checkRevenueValidity},
		{Name: "sales_revenue_outliers", Check: checkRevenueOutliers},
	}
}

func ProductRules() []Rule {
	return []Rule{
		{Name: "product_unit_cost", Check: checkUnitCostComplete},
		{Name: "product_pricing_margin", Check: checkPricingMargin},
	}
}

func ReviewRules() []Rule {
	return []Rule{
		{Name: "review_text_completeness", Check: checkReviewText},
	}
}

func checkSalesNulls(ds *dataset.Dataset) model.CheckResult {
	nulls := ds.NullCount()
	if nulls == 0 {
		return pass(0, "Sales data has no null values")
	}
	return fail(float64(nulls), "Sales data has %d null values", nulls)
}

func checkDuplicateTransactions(ds *dataset.Dataset) model.CheckResult {
	col := transactionIDColumn(ds)
	dups := ds.DuplicateCount(col)
	if dups == 0 {
		return pass(0, "All transaction IDs are unique")
	}
	return fail(float64(dups), "%d duplicate transaction IDs", dups)
}

func checkRevenueValidity(ds *dataset.Dataset) model.CheckResult {
	invalid := ds.CountWhere(func(rec dataset.Record) bool {
		v, ok := ds.Float(rec, "total_revenue")
		return ok && v <= 0
	})
	if invalid == 0 {
		return pass(0, "No zero/negative revenues in original data")
	}
	return fail(float64(invalid), "%d transactions with invalid revenue", invalid)
}

// checkRevenueOutliers flags revenues above Q3 + 3×IQR. Under 5% of rows
// is acceptable for this dataset; more is a warning, not a failure.
func checkRevenueOutliers(ds *dataset.Dataset) model.CheckResult {
	revenues := ds.Floats("total_revenue")
	if len(revenues) == 0 {
		return fail(0, "sales data has no numeric total_revenue column")
	}
	upper, _ := outlierCounts(revenues)
	pct := utils.Percent(float64(upper), float64(len(revenues)))
	if pct < 5 {
		return pass(pct, "Revenue outliers within acceptable range (<5%%)")
	}
	return warn(pct, "%.1f%% revenue outliers detected", pct)
}

func checkUnitCostComplete(ds *dataset.Dataset) model.CheckResult {
	missing := ds.NullCountIn("unit_cost")
	if missing == 0 {
		return pass(0, "All products have unit cost defined")
	}
	return fail(float64(missing), "%d products missing unit cost", missing)
}

func checkPricingMargin(ds *dataset.Dataset) model.CheckResult {
	invalid := ds.CountWhere(func(rec dataset.Record) bool {
		cost, okC := ds.Float(rec, "unit_cost")
		price, okP := ds.Float(rec, "unit_price")
		return okC && okP && cost > price
	})
	if invalid == 0 {
		return pass(0, "All products have price > cost")
	}
	return fail(float64(invalid), "%d products have cost > price (negative margin)", invalid)
}

func checkReviewText(ds *dataset.Dataset) model.CheckResult {
	missing := ds.NullCountIn("review_text")
	if missing == 0 {
		return pass(0, "No missing review text")
	}
	return warn(float64(missing), "%d reviews missing text", missing)
}

// transactionIDColumn resolves the transaction key; legacy exports name
// it sale_id instead of trans_id.
func transactionIDColumn(ds *dataset.Dataset) string {
	if col, ok := ds.Resolve("trans_id"); ok {
		return col
	}
	if col, ok := ds.Resolve("sale_id"); ok {
		return col
	}
	return "trans_id"
}
