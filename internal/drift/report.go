// Package drift defines the spend-drift report model delivered by the
// DriftWatch backend, plus the display helpers the dashboard renders with.
// All numbers are backend-computed; this package never derives drift or
// annualized figures itself.
package drift

// CategoryID identifies one of the three fixed cost domains. The set is
// closed and known at build time; the backend never emits anything else.
type CategoryID string

const (
	CategoryPeople    CategoryID = "people"
	CategoryAILLM     CategoryID = "ai_llm"
	CategorySaaSCloud CategoryID = "saas_cloud"
)

// Categories returns the category IDs in canonical display order.
func Categories() []CategoryID {
	return []CategoryID{CategoryPeople, CategoryAILLM, CategorySaaSCloud}
}

// Label returns the human-readable name for the category.
func (c CategoryID) Label() string {
	switch c {
	case CategoryPeople:
		return "People"
	case CategoryAILLM:
		return "AI / LLM"
	case CategorySaaSCloud:
		return "SaaS & Cloud"
	default:
		return string(c)
	}
}

// Valid reports whether the ID is one of the enumerated categories.
func (c CategoryID) Valid() bool {
	switch c {
	case CategoryPeople, CategoryAILLM, CategorySaaSCloud:
		return true
	}
	return false
}

// Report is the full drift report as delivered by GET /api/drift.
// AnnualizedDrift is a backend field and is displayed verbatim; the client
// must not recompute it as 12x the monthly figure locally.
type Report struct {
	TotalMonthlyDrift float64      `json:"total_monthly_drift"`
	AnnualizedDrift   float64      `json:"annualized_drift"`
	Categories        []Category   `json:"categories"`
	MonthlyTrends     []TrendPoint `json:"monthly_trends"`
}

// Category groups the drift rows for one cost domain. Items arrive sorted
// largest-drift-first by the backend; that order is preserved everywhere.
type Category struct {
	Category   CategoryID `json:"category"`
	TotalDrift float64    `json:"total_drift"`
	DriftPct   float64    `json:"drift_pct"`
	Items      []Item     `json:"items"`
}

// Item is a single line item's before/after averages and drift.
type Item struct {
	Item      string  `json:"item"`
	AvgBefore float64 `json:"avg_before"`
	AvgAfter  float64 `json:"avg_after"`
	Drift     float64 `json:"drift"`
	DriftPct  float64 `json:"drift_pct"`
}

// TrendPoint is one calendar month of per-category spend. Points arrive in
// chronological order, one per month.
type TrendPoint struct {
	Month     string  `json:"month"` // "YYYY-MM"
	People    float64 `json:"people"`
	AILLM     float64 `json:"ai_llm"`
	SaaSCloud float64 `json:"saas_cloud"`
}

// Value returns the spend for the given category in this month.
func (p TrendPoint) Value(c CategoryID) float64 {
	switch c {
	case CategoryPeople:
		return p.People
	case CategoryAILLM:
		return p.AILLM
	case CategorySaaSCloud:
		return p.SaaSCloud
	default:
		return 0
	}
}

// Total returns the combined spend across all categories for this month.
func (p TrendPoint) Total() float64 {
	return p.People + p.AILLM + p.SaaSCloud
}

// CategoryByID looks up a category by ID in backend order.
func (r *Report) CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range r.Categories {
		if c.Category == id {
			return c, true
		}
	}
	return Category{}, false
}

// TrendIndex returns the position of month in MonthlyTrends, or -1.
func (r *Report) TrendIndex(month string) int {
	for i, p := range r.MonthlyTrends {
		if p.Month == month {
			return i
		}
	}
	return -1
}

// Severity classifies an item's drift magnitude for display tinting only.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityElevated
	SeverityHigh
)

// ItemSeverity buckets an item by absolute drift percentage. Thresholds
// match the web dashboard: >20% high, >10% elevated.
func ItemSeverity(it Item) Severity {
	pct := it.DriftPct
	if pct < 0 {
		pct = -pct
	}
	switch {
	case pct > 20:
		return SeverityHigh
	case pct > 10:
		return SeverityElevated
	default:
		return SeverityNone
	}
}
