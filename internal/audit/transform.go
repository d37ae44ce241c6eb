package audit

import (
	"fmt"
	"math"

	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
	"dq-audit/internal/report"
	"dq-audit/pkg/utils"
)

// Transformer validation: conservation properties between the original
// extract and its transformed counterpart. None of these checks mutate
// either dataset.

// derivedFieldTolerance is the absolute tolerance when re-deriving
// calculated monetary fields.
const derivedFieldTolerance = 0.01

// marketingCapRatio is the allocation safety cap: marketing attributed to
// a transaction may not exceed this share of its revenue.
const marketingCapRatio = 0.30

// RecordCountCheck verifies the transformation did not drop records.
func RecordCountCheck(origCount, factCount int) model.CheckResult {
	if factCount >= origCount {
		return pass(float64(factCount), "Record count preserved (%s >= %s)",
			report.Comma(int64(factCount)), report.Comma(int64(origCount)))
	}
	return fail(float64(origCount-factCount), "Lost %s records during transformation!",
		report.Comma(int64(origCount-factCount)))
}

// RevenueConservationCheck verifies total revenue is preserved. Anything
// under 0.01% is treated as float noise; under 1% is a warning.
func RevenueConservationCheck(origTotal, factTotal float64) model.CheckResult {
	diffPct := 0.0
	if origTotal != 0 {
		diffPct = math.Abs(origTotal-factTotal) / origTotal * 100
	}
	switch {
	case diffPct < 0.01:
		return pass(diffPct, "Revenue preserved perfectly (diff: %.4f%%)", diffPct)
	case diffPct < 1:
		return warn(diffPct, "Revenue difference: %.2f%%", diffPct)
	default:
		return fail(diffPct, "Significant revenue discrepancy: %.2f%%!", diffPct)
	}
}

// CostCalculationCheck re-derives cost = quantity × unit_cost against the
// product catalog. Rows without a catalog match are skipped, mirroring a
// left join.
func CostCalculationCheck(fact, products *dataset.Dataset) model.CheckResult {
	unitCosts := make(map[string]float64, products.Len())
	for _, rec := range products.Rows {
		id := productKey(products, rec)
		if id == "" {
			continue
		}
		if cost, ok := products.Float(rec, "unit_cost"); ok {
			unitCosts[id] = cost
		}
	}

	errors := 0
	for _, rec := range fact.Rows {
		id := productKey(fact, rec)
		unitCost, matched := unitCosts[id]
		if !matched {
			continue
		}
		qty, okQ := fact.Float(rec, "quantity")
		cost, okC := fact.Float(rec, "cost")
		if !okQ || !okC {
			continue
		}
		if math.Abs(cost-qty*unitCost) > derivedFieldTolerance {
			errors++
		}
	}
	if errors == 0 {
		return pass(0, "Cost calculation is accurate (quantity × unit_cost)")
	}
	return fail(float64(errors), "%d transactions have incorrect cost calculations", errors)
}

// GrossProfitCheck re-derives gross_profit = total_revenue − cost.
func GrossProfitCheck(fact *dataset.Dataset) model.CheckResult {
	errors := 0
	for _, rec := range fact.Rows {
		revenue, okR := fact.Float(rec, "total_revenue")
		cost, okC := fact.Float(rec, "cost")
		gross, okG := fact.Float(rec, "gross_profit")
		if !okR || !okC || !okG {
			continue
		}
		if math.Abs(gross-(revenue-cost)) > derivedFieldTolerance {
			errors++
		}
	}
	if errors == 0 {
		return pass(0, "Gross profit calculation is accurate (revenue - cost)")
	}
	return fail(float64(errors), "%d transactions have incorrect gross profit", errors)
}

// NetProfitCheck re-derives
// net_profit = total_revenue − cost − shipping_cost_total − allocated_marketing_dzd.
func NetProfitCheck(fact *dataset.Dataset) model.CheckResult {
	errors := 0
	for _, rec := range fact.Rows {
		revenue, okR := fact.Float(rec, "total_revenue")
		cost, okC := fact.Float(rec, "cost")
		shipping, okS := fact.Float(rec, "shipping_cost_total")
		marketing, okM := fact.Float(rec, "allocated_marketing_dzd")
		net, okN := fact.Float(rec, "net_profit")
		if !okR || !okC || !okS || !okM || !okN {
			continue
		}
		if math.Abs(net-(revenue-cost-shipping-marketing)) > derivedFieldTolerance {
			errors++
		}
	}
	if errors == 0 {
		return pass(0, "Net profit formula verified: Revenue - Cost - Shipping - Marketing")
	}
	return fail(float64(errors), "%d transactions have incorrect net profit calculation", errors)
}

// NegativeProfitCheck gates on the share of loss-making transactions.
func NegativeProfitCheck(fact *dataset.Dataset) model.CheckResult {
	negative := fact.CountWhere(func(rec dataset.Record) bool {
		net, ok := fact.Float(rec, "net_profit")
		return ok && net < 0
	})
	pct := utils.Percent(float64(negative), float64(fact.Len()))
	switch {
	case pct < 10:
		return pass(pct, "Negative profit transactions: %.1f%% (acceptable)", pct)
	case pct < 20:
		return warn(pct, "Negative profit transactions: %.1f%% (moderate)", pct)
	default:
		return fail(pct, "Negative profit transactions: %.1f%% (too high!)", pct)
	}
}

// MarketingCapCheck enforces the allocation safety cap on every row.
func MarketingCapCheck(fact *dataset.Dataset) model.CheckResult {
	excessive := fact.CountWhere(func(rec dataset.Record) bool {
		marketing, okM := fact.Float(rec, "allocated_marketing_dzd")
		revenue, okR := fact.Float(rec, "total_revenue")
		return okM && okR && marketing > revenue*marketingCapRatio
	})
	pct := utils.Percent(float64(excessive), float64(fact.Len()))
	if excessive == 0 {
		return pass(0, "Marketing allocation capped properly (≤30%% of revenue)")
	}
	return fail(pct, "%d transactions exceed 30%% marketing cap (%.1f%% of total)!", excessive, pct)
}

// MarketingRatioCheck verifies overall marketing spend sits in the
// 5-20% band typical for the sector.
func MarketingRatioCheck(fact *dataset.Dataset) model.CheckResult {
	revenue := fact.Sum("total_revenue")
	marketing := fact.Sum("allocated_marketing_dzd")
	ratio := utils.Percent(marketing, revenue)
	if ratio >= 5 && ratio <= 20 {
		return pass(ratio, "Overall marketing ratio: %.2f%% (industry standard: 5-20%%)", ratio)
	}
	return warn(ratio, "Marketing ratio %.2f%% outside typical range (5-20%%)", ratio)
}

// profitDistribution feeds the net profit distribution table.
type profitDistribution struct {
	Positive, Negative, BreakEven, Total int
}

func profitBreakdown(fact *dataset.Dataset) profitDistribution {
	dist := profitDistribution{Total: fact.Len()}
	for _, rec := range fact.Rows {
		net, okN := fact.Float(rec, "net_profit")
		revenue, okR := fact.Float(rec, "total_revenue")
		if !okN {
			continue
		}
		if net > 0 {
			dist.Positive++
		}
		if net < 0 {
			dist.Negative++
		}
		if okR && net >= -revenue*0.01 && net <= revenue*0.01 {
			dist.BreakEven++
		}
	}
	return dist
}

func productKey(ds *dataset.Dataset, rec dataset.Record) string {
	col, ok := ds.Resolve("product_id")
	if !ok {
		return ""
	}
	v := rec[col]
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
