package drift

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReportUnmarshal(t *testing.T) {
	payload := `{
		"total_monthly_drift": 18250.5,
		"annualized_drift": 219006,
		"categories": [
			{
				"category": "people",
				"total_drift": 12000,
				"drift_pct": 8.2,
				"items": [
					{"item": "Engineering / Contractor", "avg_before": 40000, "avg_after": 52000, "drift": 12000, "drift_pct": 30.0}
				]
			}
		],
		"monthly_trends": [
			{"month": "2025-01", "people": 140000, "ai_llm": 9000, "saas_cloud": 21000},
			{"month": "2025-02", "people": 145000, "ai_llm": 12500, "saas_cloud": 21400}
		]
	}`

	var r Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := Report{
		TotalMonthlyDrift: 18250.5,
		AnnualizedDrift:   219006,
		Categories: []Category{
			{
				Category:   CategoryPeople,
				TotalDrift: 12000,
				DriftPct:   8.2,
				Items: []Item{
					{Item: "Engineering / Contractor", AvgBefore: 40000, AvgAfter: 52000, Drift: 12000, DriftPct: 30.0},
				},
			},
		},
		MonthlyTrends: []TrendPoint{
			{Month: "2025-01", People: 140000, AILLM: 9000, SaaSCloud: 21000},
			{Month: "2025-02", People: 145000, AILLM: 12500, SaaSCloud: 21400},
		},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	// The annualized figure is whatever the backend sent, even when it is
	// not exactly 12x the monthly figure.
	if r.AnnualizedDrift == r.TotalMonthlyDrift*12 {
		t.Log("backend happened to send 12x; client still must not rely on it")
	}
}

func TestCategoryByID(t *testing.T) {
	r := Report{Categories: []Category{
		{Category: CategorySaaSCloud, TotalDrift: 1},
		{Category: CategoryPeople, TotalDrift: 2},
	}}

	got, ok := r.CategoryByID(CategoryPeople)
	if !ok || got.TotalDrift != 2 {
		t.Fatalf("CategoryByID(people) = %+v, %v", got, ok)
	}
	if _, ok := r.CategoryByID(CategoryAILLM); ok {
		t.Fatal("expected ai_llm to be absent")
	}
}

func TestTrendIndex(t *testing.T) {
	r := Report{MonthlyTrends: []TrendPoint{
		{Month: "2025-01"}, {Month: "2025-02"}, {Month: "2025-03"},
	}}

	if got := r.TrendIndex("2025-02"); got != 1 {
		t.Errorf("TrendIndex(2025-02) = %d, want 1", got)
	}
	if got := r.TrendIndex("2024-12"); got != -1 {
		t.Errorf("TrendIndex(2024-12) = %d, want -1", got)
	}
}

func TestTrendPointValueAndTotal(t *testing.T) {
	p := TrendPoint{Month: "2025-03", People: 100, AILLM: 20, SaaSCloud: 5}

	if got := p.Value(CategoryAILLM); got != 20 {
		t.Errorf("Value(ai_llm) = %v, want 20", got)
	}
	if got := p.Total(); got != 125 {
		t.Errorf("Total() = %v, want 125", got)
	}
}

func TestItemSeverity(t *testing.T) {
	tests := []struct {
		pct  float64
		want Severity
	}{
		{25, SeverityHigh},
		{-25, SeverityHigh},
		{15, SeverityElevated},
		{-10.5, SeverityElevated},
		{10, SeverityNone},
		{0, SeverityNone},
	}

	for _, tt := range tests {
		if got := ItemSeverity(Item{DriftPct: tt.pct}); got != tt.want {
			t.Errorf("ItemSeverity(pct=%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestCategoryLabels(t *testing.T) {
	if got := Categories(); len(got) != 3 || got[0] != CategoryPeople {
		t.Fatalf("Categories() = %v", got)
	}
	if CategoryAILLM.Label() != "AI / LLM" {
		t.Errorf("ai_llm label = %q", CategoryAILLM.Label())
	}
	if !CategorySaaSCloud.Valid() {
		t.Error("saas_cloud should be valid")
	}
	if CategoryID("payroll").Valid() {
		t.Error("payroll is not a valid category id")
	}
}
