package audit

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dq-audit/internal/config"
	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
	"dq-audit/internal/report"
	"dq-audit/internal/warehouse"
	"dq-audit/pkg/utils"
)

// Auditor runs the full quality audit: load the extracted and transformed
// datasets, run every check in fixed order against one append-only
// recorder, reconcile against the warehouse and render the report.
// Rerunning on unchanged data yields an identical report apart from the
// Generated timestamp.
type Auditor struct {
	Config *config.Config

	// Counter overrides the warehouse row-count source; when nil the
	// SQLite warehouse from the config is opened.
	Counter RowCounter

	// Now is injectable for deterministic report headers in tests.
	Now func() time.Time

	entries []model.ReconciliationEntry
}

func New(cfg *config.Config) *Auditor {
	return &Auditor{Config: cfg, Now: time.Now}
}

// Run executes one audit under the given run ID. Only a dataset that
// cannot be loaded aborts the run; every downstream problem becomes a
// Fail result and the run continues. Each run writes its own report file
// so older runs stay downloadable.
func (a *Auditor) Run(ctx context.Context, runID string) (*model.RunResult, error) {
	start := a.Now()
	fmt.Printf("🚀 Starting data quality audit: %s\n", runID)

	fmt.Println("📥 Loading datasets...")
	sales, err := dataset.LoadCSV("sales", filepath.Join(a.Config.ExtractedDir, "sales.csv"))
	if err != nil {
		return nil, err
	}
	products, err := dataset.LoadCSV("products", filepath.Join(a.Config.ExtractedDir, "products.csv"))
	if err != nil {
		return nil, err
	}
	reviews, err := dataset.LoadCSV("reviews", filepath.Join(a.Config.ExtractedDir, "reviews.csv"))
	if err != nil {
		return nil, err
	}

	transformed := make(map[string]*dataset.Dataset, len(WarehouseTables))
	for _, table := range WarehouseTables {
		ds, err := dataset.LoadCSV(table, filepath.Join(a.Config.TransformedDir, table+".csv"))
		if err != nil {
			return nil, err
		}
		transformed[table] = ds
	}
	fact := transformed["Fact_Sales"]

	b := report.NewBuilder()
	rec := NewRecorder()

	fmt.Println("[1/5] Analyzing original data...")
	a.analyzeOriginalData(b, rec, sales, products, reviews)

	fmt.Println("[2/5] Analyzing transformation quality...")
	a.analyzeTransformation(b, rec, sales, fact, products)

	fmt.Println("[3/5] Analyzing dimension tables...")
	a.analyzeDimensions(b, rec, transformed["Dim_Product"], transformed["Dim_Date"])

	fmt.Println("[4/5] Analyzing database integrity...")
	a.reconcile(ctx, b, rec, transformed)

	fmt.Println("[5/5] Generating summary...")
	doc := b.Render(start, rec.Score(), rec.Total())
	reportPath := a.reportPath(runID)
	if dir := filepath.Dir(reportPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(reportPath, []byte(doc), 0644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	grade, _ := report.Grade(rec.Percentage())
	result := &model.RunResult{
		ID:          runID,
		Score:       rec.Score(),
		TotalChecks: rec.Total(),
		Percentage:  rec.Percentage(),
		Grade:       grade,
		ReportPath:  reportPath,
		Results:     rec.Results(),
		Entries:     a.entries,
		StartedAt:   start,
		Duration:    a.Now().Sub(start),
	}

	fmt.Printf("🏁 Audit completed: %.1f / %d checks (%.1f%%) in %v\n",
		result.Score, result.TotalChecks, result.Percentage, result.Duration)
	return result, nil
}

func (a *Auditor) analyzeOriginalData(b *report.Builder, rec *Recorder, sales, products, reviews *dataset.Dataset) {
	b.Section("📥 Original Data Analysis (Pre-Transformation)", 1)

	// --- Sales ---
	b.Section("Sales Data Quality", 2)

	dateMin, dateMax := sales.MinMaxString("date")
	zeroNegRevenue := sales.CountWhere(func(r dataset.Record) bool {
		v, ok := sales.Float(r, "total_revenue")
		return ok && v <= 0
	})
	zeroQty := sales.CountWhere(func(r dataset.Record) bool {
		v, ok := sales.Float(r, "quantity")
		return ok && v == 0
	})

	b.Table([]string{"Metric", "Value"}, [][]string{
		{"Total Records", report.Comma(int64(sales.Len()))},
		{"Date Range", fmt.Sprintf("%s to %s", dateMin, dateMax)},
		{"Null Values", fmt.Sprintf("%d fields", sales.NullCount())},
		{"Duplicate trans_id", fmt.Sprintf("%d", sales.DuplicateCount(transactionIDColumn(sales)))},
		{"Zero/Negative Revenue", fmt.Sprintf("%d", zeroNegRevenue)},
		{"Zero Quantity", fmt.Sprintf("%d", zeroQty)},
		{"Unique Products", fmt.Sprintf("%d", sales.DistinctCount("product_id"))},
		{"Unique Stores", fmt.Sprintf("%d", sales.DistinctCount("store_id"))},
		{"Unique Customers", fmt.Sprintf("%d", sales.DistinctCount("customer_id"))},
	})

	salesResults := RunRules(sales, SalesRules())
	for _, res := range salesResults {
		rec.Append(res)
	}
	// The outlier check line belongs under its distribution table.
	for _, res := range salesResults[:len(salesResults)-1] {
		b.Check(res)
	}

	b.Section("Revenue Distribution Analysis", 3)
	revenues := sales.Floats("total_revenue")
	dist := describe(revenues)
	upper, lower := outlierCounts(revenues)
	b.Table([]string{"Statistic", "Value"}, [][]string{
		{"Mean", report.Money(dist.Mean)},
		{"Median", report.Money(dist.Median)},
		{"Std Dev", report.Money(dist.Std)},
		{"Min", report.Money(dist.Min)},
		{"Max", report.Money(dist.Max)},
		{"Q1", report.Money(dist.Q1)},
		{"Q3", report.Money(dist.Q3)},
		{"Outliers (Upper)", fmt.Sprintf("%d (%.1f%%)", upper, utils.Percent(float64(upper), float64(sales.Len())))},
		{"Outliers (Lower)", fmt.Sprintf("%d (%.1f%%)", lower, utils.Percent(float64(lower), float64(sales.Len())))},
	})
	b.Check(salesResults[len(salesResults)-1])

	// --- Products ---
	b.Section("Product Data Quality", 2)

	invalidPricing := products.CountWhere(func(r dataset.Record) bool {
		cost, okC := products.Float(r, "unit_cost")
		price, okP := products.Float(r, "unit_price")
		return okC && okP && cost > price
	})
	zeroCost := products.CountWhere(func(r dataset.Record) bool {
		v, ok := products.Float(r, "unit_cost")
		return ok && v == 0
	})
	prices := products.Floats("unit_price")
	costs := products.Floats("unit_cost")
	priceDist := describe(prices)
	costDist := describe(costs)

	b.Table([]string{"Metric", "Value"}, [][]string{
		{"Total Products", fmt.Sprintf("%d", products.Len())},
		{"Null Unit_Cost", fmt.Sprintf("%d", products.NullCountIn("unit_cost"))},
		{"Null Unit_Price", fmt.Sprintf("%d", products.NullCountIn("unit_price"))},
		{"Cost > Price (Invalid)", fmt.Sprintf("%d", invalidPricing)},
		{"Zero Cost", fmt.Sprintf("%d", zeroCost)},
		{"Price Range", fmt.Sprintf("%s - %s", report.Amount(priceDist.Min), report.Money(priceDist.Max))},
		{"Cost Range", fmt.Sprintf("%s - %s", report.Amount(costDist.Min), report.Money(costDist.Max))},
	})

	for _, res := range RunRules(products, ProductRules()) {
		rec.Append(res)
		b.Check(res)
	}

	// --- Reviews ---
	b.Section("Reviews Data Quality", 2)

	productsWithReviews := reviews.DistinctCount("product_id")
	avgPerProduct := 0.0
	if productsWithReviews > 0 {
		avgPerProduct = float64(reviews.Len()) / float64(productsWithReviews)
	}
	oneStar := reviews.CountWhere(func(r dataset.Record) bool {
		v, ok := reviews.Float(r, "rating")
		return ok && v == 1
	})
	fiveStar := reviews.CountWhere(func(r dataset.Record) bool {
		v, ok := reviews.Float(r, "rating")
		return ok && v == 5
	})
	textCol, _ := reviews.Resolve("review_text")
	emptyReviews := reviews.CountWhere(func(r dataset.Record) bool {
		s, ok := r[textCol].(string)
		return ok && len(s) < 5
	})

	b.Table([]string{"Metric", "Value"}, [][]string{
		{"Total Reviews", report.Comma(int64(reviews.Len()))},
		{"Products with Reviews", fmt.Sprintf("%d", productsWithReviews)},
		{"Avg Reviews per Product", fmt.Sprintf("%.1f", avgPerProduct)},
		{"Null Review Text", fmt.Sprintf("%d", reviews.NullCountIn("review_text"))},
		{"Null Ratings", fmt.Sprintf("%d", reviews.NullCountIn("rating"))},
		{"Rating Distribution", fmt.Sprintf("1★: %d, 5★: %d", oneStar, fiveStar)},
		{"Empty Reviews", fmt.Sprintf("%d", emptyReviews)},
	})

	for _, res := range RunRules(reviews, ReviewRules()) {
		rec.Append(res)
		b.Check(res)
	}
}

func (a *Auditor) analyzeTransformation(b *report.Builder, rec *Recorder, sales, fact, products *dataset.Dataset) {
	b.Section("🔄 Transformation Quality Analysis", 1)

	// --- Record counts ---
	b.Section("Record Count Integrity", 2)

	diff := fact.Len() - sales.Len()
	diffStatus := "⚠️"
	if diff > -10 && diff < 10 {
		diffStatus = "✅"
	}
	countStatus := "❌"
	if fact.Len() >= sales.Len() {
		countStatus = "✅"
	}
	b.Table([]string{"Dataset", "Records", "Status"}, [][]string{
		{"Original Sales", report.Comma(int64(sales.Len())), "✅"},
		{"Transformed Fact_Sales", report.Comma(int64(fact.Len())), countStatus},
		{"Difference", report.Comma(int64(diff)), diffStatus},
	})

	record(b, rec, capture("transform_record_count", func() model.CheckResult {
		return RecordCountCheck(sales.Len(), fact.Len())
	}))

	// --- Revenue conservation ---
	b.Section("Revenue Integrity Check", 2)

	origTotal := sales.Sum("total_revenue")
	factTotal := fact.Sum("total_revenue")
	diffPct := 0.0
	if origTotal != 0 {
		diffPct = math.Abs(origTotal-factTotal) / origTotal * 100
	}
	b.Table([]string{"Source", "Total Revenue (DZD)"}, [][]string{
		{"Original", report.Amount(origTotal)},
		{"Transformed", report.Amount(factTotal)},
		{"Difference", report.Amount(factTotal - origTotal)},
		{"Difference %", report.Pct2(diffPct)},
	})

	record(b, rec, capture("transform_revenue_integrity", func() model.CheckResult {
		return RevenueConservationCheck(origTotal, factTotal)
	}))

	// --- Derived fields ---
	b.Section("Feature Engineering Quality", 2)
	b.Line("**Calculated Fields Validation:**\n")

	record(b, rec, capture("transform_cost_calculation", func() model.CheckResult {
		return CostCalculationCheck(fact, products)
	}))
	record(b, rec, capture("transform_gross_profit", func() model.CheckResult {
		return GrossProfitCheck(fact)
	}))

	b.Section("Net Profit Calculation Validation", 3)

	record(b, rec, capture("transform_net_profit", func() model.CheckResult {
		return NetProfitCheck(fact)
	}))

	dist := profitBreakdown(fact)
	b.Table([]string{"Category", "Count", "Percentage"}, [][]string{
		{"Positive Profit", fmt.Sprintf("%d", dist.Positive), report.Pct1(utils.Percent(float64(dist.Positive), float64(dist.Total)))},
		{"Negative Profit", fmt.Sprintf("%d", dist.Negative), report.Pct1(utils.Percent(float64(dist.Negative), float64(dist.Total)))},
		{"Break-even (±1%)", fmt.Sprintf("%d", dist.BreakEven), report.Pct1(utils.Percent(float64(dist.BreakEven), float64(dist.Total)))},
		{"Total", fmt.Sprintf("%d", dist.Total), "100.0%"},
	})

	record(b, rec, capture("transform_negative_profit", func() model.CheckResult {
		return NegativeProfitCheck(fact)
	}))

	// --- Marketing allocation ---
	b.Section("Marketing Cost Allocation Analysis", 3)

	marketing := fact.Floats("allocated_marketing_dzd")
	mktDist := describe(marketing)
	withMarketing := fact.CountWhere(func(r dataset.Record) bool {
		v, ok := fact.Float(r, "allocated_marketing_dzd")
		return ok && v > 0
	})
	excessive := fact.CountWhere(func(r dataset.Record) bool {
		m, okM := fact.Float(r, "allocated_marketing_dzd")
		rev, okR := fact.Float(r, "total_revenue")
		return okM && okR && m > rev*marketingCapRatio
	})
	overallRatio := utils.Percent(fact.Sum("allocated_marketing_dzd"), fact.Sum("total_revenue"))

	b.Table([]string{"Metric", "Value"}, [][]string{
		{"Avg Marketing per Transaction", report.Money(mktDist.Mean)},
		{"Max Marketing Allocated", report.Money(mktDist.Max)},
		{"Transactions with Marketing", report.Comma(int64(withMarketing))},
		{"Excessive Marketing (>30% revenue)", fmt.Sprintf("%d (%.1f%%)", excessive, utils.Percent(float64(excessive), float64(fact.Len())))},
		{"Marketing as % of Revenue", report.Pct2(overallRatio)},
	})

	record(b, rec, capture("transform_marketing_cap", func() model.CheckResult {
		return MarketingCapCheck(fact)
	}))
	record(b, rec, capture("transform_marketing_ratio", func() model.CheckResult {
		return MarketingRatioCheck(fact)
	}))
}

func (a *Auditor) analyzeDimensions(b *report.Builder, rec *Recorder, dimProduct, dimDate *dataset.Dataset) {
	b.Section("📊 Dimension Tables Quality", 1)

	// --- Dim_Product ---
	b.Section("Dim_Product Analysis", 2)

	withSentiment := dimProduct.Len() - dimProduct.NullCountIn("avg_sentiment")
	withCompetitor := dimProduct.Len() - dimProduct.NullCountIn("competitor_price")
	sentiments := dimProduct.Floats("avg_sentiment")
	priceDiffs := dimProduct.Floats("price_difference_pct")

	b.Table([]string{"Check", "Result"}, [][]string{
		{"Total Products", fmt.Sprintf("%d", dimProduct.Len())},
		{"Unique Product IDs", fmt.Sprintf("%d", dimProduct.DistinctCount("product_id"))},
		{"Products with Sentiment", fmt.Sprintf("%d (%.1f%%)", withSentiment, utils.Percent(float64(withSentiment), float64(dimProduct.Len())))},
		{"Avg Sentiment Score", fmt.Sprintf("%.3f", mean(sentiments))},
		{"Products with Competitor Price", fmt.Sprintf("%d (%.1f%%)", withCompetitor, utils.Percent(float64(withCompetitor), float64(dimProduct.Len())))},
		{"Avg Price Difference", report.Pct2(mean(priceDiffs))},
		{"Missing Category", fmt.Sprintf("%d", dimProduct.NullCountIn("category_name"))},
		{"Missing Subcategory", fmt.Sprintf("%d", dimProduct.NullCountIn("subcat_name"))},
	})

	record(b, rec, capture("dim_product_sentiment_coverage", func() model.CheckResult {
		return SentimentCoverageCheck(dimProduct)
	}))
	record(b, rec, capture("dim_product_competitor_coverage", func() model.CheckResult {
		return CompetitorCoverageCheck(dimProduct)
	}))

	// --- Dim_Date ---
	b.Section("Dim_Date Analysis", 2)

	cal := describeCalendar(dimDate)
	dateMin, dateMax := dimDate.MinMaxString("date")
	b.Table([]string{"Check", "Result"}, [][]string{
		{"Total Dates", fmt.Sprintf("%d", dimDate.Len())},
		{"Date Range", fmt.Sprintf("%s to %s", dateMin, dateMax)},
		{"Date Gaps (>1 day)", fmt.Sprintf("%d", cal.Gaps)},
		{"Weekdays", fmt.Sprintf("%d", cal.Weekdays)},
		{"Weekends", fmt.Sprintf("%d", cal.Weekends)},
		{"Duplicates", fmt.Sprintf("%d", dimDate.DuplicateCount("date"))},
	})

	record(b, rec, capture("dim_date_uniqueness", func() model.CheckResult {
		return DateUniquenessCheck(dimDate)
	}))
}

func (a *Auditor) reconcile(ctx context.Context, b *report.Builder, rec *Recorder, transformed map[string]*dataset.Dataset) {
	b.Section("🗄️ Database vs CSV Integrity", 1)

	counter := a.Counter
	if counter == nil {
		wh, err := warehouse.Open(a.Config.Warehouse)
		if err != nil {
			res := model.CheckResult{
				Name:    "db_integrity_warehouse",
				Status:  model.StatusFail,
				Message: "Database file not found!",
			}
			record(b, rec, res)
			return
		}
		defer wh.Close()
		counter = wh
	}

	csvCounts := make(map[string]int64, len(transformed))
	for name, ds := range transformed {
		csvCounts[name] = int64(ds.Len())
	}

	entries, results := Reconcile(ctx, counter, csvCounts)
	a.entries = entries
	for _, res := range results {
		record(b, rec, res)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Table,
			report.Comma(e.CSVRows),
			report.Comma(e.DBRows),
			report.MatchMark(e.Match),
		})
	}
	b.Table([]string{"Table", "CSV Rows", "DB Rows", "Match"}, rows)
}

// reportPath derives the per-run report file from the configured base
// path: out/REPORT.md becomes out/REPORT_<runID>.md. Concurrent runs
// never write the same file.
func (a *Auditor) reportPath(runID string) string {
	ext := filepath.Ext(a.Config.Report)
	base := strings.TrimSuffix(a.Config.Report, ext)
	return fmt.Sprintf("%s_%s%s", base, runID, ext)
}

// record appends a result to both the recorder and the report body.
func record(b *report.Builder, rec *Recorder, res model.CheckResult) {
	rec.Append(res)
	b.Check(res)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
