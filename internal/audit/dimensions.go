package audit

import (
	"fmt"
	"sort"
	"time"

	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
	"dq-audit/pkg/utils"
)

// Dimension table checks: enrichment coverage on Dim_Product and calendar
// integrity on Dim_Date.

// SentimentCoverageCheck gates on the share of products carrying a
// review-sentiment score.
func SentimentCoverageCheck(dimProduct *dataset.Dataset) model.CheckResult {
	covered := dimProduct.Len() - dimProduct.NullCountIn("avg_sentiment")
	pct := utils.Percent(float64(covered), float64(dimProduct.Len()))
	switch {
	case pct >= 90:
		return pass(pct, "Sentiment analysis coverage: %.1f%%", pct)
	case pct >= 70:
		return warn(pct, "Sentiment analysis coverage: %.1f%%", pct)
	default:
		return fail(pct, "Low sentiment coverage: %.1f%%", pct)
	}
}

// CompetitorCoverageCheck gates on the share of products matched to a
// scraped competitor price.
func CompetitorCoverageCheck(dimProduct *dataset.Dataset) model.CheckResult {
	covered := dimProduct.Len() - dimProduct.NullCountIn("competitor_price")
	pct := utils.Percent(float64(covered), float64(dimProduct.Len()))
	switch {
	case pct >= 80:
		return pass(pct, "Competitor price matching: %.1f%%", pct)
	case pct >= 30:
		return warn(pct, "Competitor price matching: %.1f%%", pct)
	default:
		return fail(pct, "Low competitor price matching: %.1f%%", pct)
	}
}

// DateUniquenessCheck verifies the calendar dimension has one row per day.
func DateUniquenessCheck(dimDate *dataset.Dataset) model.CheckResult {
	dups := dimDate.DuplicateCount("date")
	if dups == 0 {
		return pass(0, "All dates are unique")
	}
	return fail(float64(dups), "%d duplicate dates found!", dups)
}

// calendarStats feeds the Dim_Date analysis table.
type calendarStats struct {
	Gaps     int
	Weekdays int
	Weekends int
}

func describeCalendar(dimDate *dataset.Dataset) calendarStats {
	var stats calendarStats

	dowCol, hasDow := dimDate.Resolve("day_of_week")
	if hasDow {
		for _, rec := range dimDate.Rows {
			dow, ok := dimDate.Float(rec, dowCol)
			if !ok {
				continue
			}
			// Monday=0 numbering; 5 and 6 are the weekend.
			if dow >= 5 {
				stats.Weekends++
			} else {
				stats.Weekdays++
			}
		}
	}

	dateCol, hasDate := dimDate.Resolve("date")
	if hasDate {
		var dates []time.Time
		for _, rec := range dimDate.Rows {
			if rec[dateCol] == nil {
				continue
			}
			t, err := time.Parse("2006-01-02", fmt.Sprintf("%v", rec[dateCol]))
			if err != nil {
				continue
			}
			dates = append(dates, t)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		for i := 1; i < len(dates); i++ {
			if dates[i].Sub(dates[i-1]) > 24*time.Hour {
				stats.Gaps++
			}
		}
	}

	return stats
}
