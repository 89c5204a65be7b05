package engine

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestAggregateCampaignsSumsAndLatest(t *testing.T) {
	rows := []PerformanceRow{
		{Date: day("2026-06-01"), Campaign: "Brand", Spend: 100, Leads: 10, Demos: 2, Enrollments: 1, Conversions: 1, Budget: 80, BidStrategy: "Maximize conversions", TCPA: 0},
		{Date: day("2026-06-03"), Campaign: "Brand", Spend: 150, Leads: 5, Demos: 3, Enrollments: 0, Conversions: 2, Budget: 120, BidStrategy: "Target CPA", TCPA: 45},
		{Date: day("2026-06-02"), Campaign: "Brand", Spend: 50, Leads: 2, Demos: 1, Enrollments: 1, Conversions: 0, Budget: 100, BidStrategy: "Target CPA", TCPA: 40},
		{Date: day("2026-06-02"), Campaign: "Search", Spend: 200, Leads: 20, Demos: 4, Enrollments: 2, Conversions: 2, Budget: 300},
	}

	aggregated := AggregateCampaigns(rows)
	if len(aggregated) != 2 {
		t.Fatalf("got %d campaigns, expected 2", len(aggregated))
	}

	brand := aggregated["Brand"]
	if brand.Spend != 300 {
		t.Errorf("Spend = %.2f, expected 300", brand.Spend)
	}
	if brand.Leads != 17 || brand.Demos != 6 || brand.Enrollments != 2 || brand.Conversions != 3 {
		t.Errorf("sums wrong: %+v", brand)
	}
	if brand.Rows != 3 {
		t.Errorf("Rows = %d, expected 3", brand.Rows)
	}
	// Point-in-time fields come from the max-date row (2026-06-03).
	if brand.Budget != 120 || brand.BidStrategy != "Target CPA" || brand.TCPA != 45 {
		t.Errorf("latest fields wrong: budget=%.2f strategy=%q tcpa=%.2f", brand.Budget, brand.BidStrategy, brand.TCPA)
	}
	if brand.CostPerDemo != 50 {
		t.Errorf("CostPerDemo = %.2f, expected 50", brand.CostPerDemo)
	}
	if brand.CostPerEnrollment != 150 {
		t.Errorf("CostPerEnrollment = %.2f, expected 150", brand.CostPerEnrollment)
	}
}

func TestAggregateCampaignsCaseSensitiveIdentity(t *testing.T) {
	rows := []PerformanceRow{
		{Date: day("2026-06-01"), Campaign: "Brand", Spend: 100},
		{Date: day("2026-06-01"), Campaign: "brand", Spend: 50},
		{Date: day("2026-06-01"), Campaign: "Brand ", Spend: 25},
	}
	aggregated := AggregateCampaigns(rows)
	if len(aggregated) != 3 {
		t.Errorf("got %d campaigns, expected 3 distinct identities", len(aggregated))
	}
}

func TestAggregateCampaignsUtilization(t *testing.T) {
	tests := []struct {
		name     string
		rows     []PerformanceRow
		expected float64
	}{
		{
			name: "explicit samples win",
			rows: []PerformanceRow{
				{Date: day("2026-06-01"), Campaign: "A", Spend: 500, Budget: 100, BudgetUtilization: floatPtr(0.5)},
				{Date: day("2026-06-02"), Campaign: "A", Spend: 500, Budget: 100, BudgetUtilization: floatPtr(0.7)},
				{Date: day("2026-06-03"), Campaign: "A", Spend: 500, Budget: 100},
			},
			expected: 0.6,
		},
		{
			name: "derived from spend and latest budget",
			rows: []PerformanceRow{
				{Date: day("2026-06-01"), Campaign: "A", Spend: 50, Budget: 100},
				{Date: day("2026-06-02"), Campaign: "A", Spend: 50, Budget: 100},
				{Date: day("2026-06-03"), Campaign: "A", Spend: 50, Budget: 100},
			},
			expected: 0.5, // 150 / (100 * 3)
		},
		{
			name: "zero budget yields zero",
			rows: []PerformanceRow{
				{Date: day("2026-06-01"), Campaign: "A", Spend: 50},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggregated := AggregateCampaigns(tt.rows)
			utilization := aggregated["A"].Utilization
			if math.Abs(utilization-tt.expected) > 1e-9 {
				t.Errorf("Utilization = %.4f, expected %.4f", utilization, tt.expected)
			}
		})
	}
}

func TestAggregateCampaignsEmpty(t *testing.T) {
	aggregated := AggregateCampaigns(nil)
	if len(aggregated) != 0 {
		t.Errorf("expected empty aggregation for empty input")
	}
}
