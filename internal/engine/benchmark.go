package engine

import "github.com/adlumen/budget-engine/pkg/mathutil"

// ComputeBenchmark derives the account-wide average cost per outcome for one
// window by summing spend and outcomes across every campaign in that window.
// Division by zero yields 0, never NaN or Inf.
func ComputeBenchmark(campaigns map[string]AggregatedCampaignMetrics) Benchmark {
	var spend, demos, enrollments float64
	for _, metrics := range campaigns {
		spend += metrics.Spend
		demos += metrics.Demos
		enrollments += metrics.Enrollments
	}
	return Benchmark{
		CostPerDemo:       mathutil.SafeDiv(spend, demos),
		CostPerEnrollment: mathutil.SafeDiv(spend, enrollments),
	}
}
