package engine

import (
	"math"

	"github.com/adlumen/budget-engine/pkg/constants"
	"github.com/adlumen/budget-engine/pkg/mathutil"
)

// weightSchedules maps experiment variant -> focus -> weights over the
// short/medium/long windows, in lookback order. Each triple sums to 1.0.
// Hybrid focus blends demo and enrollment scores 50/50 per window and then
// weights the blend with the demo schedule; the enrollment schedule is never
// applied in hybrid mode.
var weightSchedules = map[string]map[string][3]float64{
	VariantA: {
		FocusDemo:       {0.20, 0.50, 0.30},
		FocusEnrollment: {0.15, 0.45, 0.40},
	},
	VariantB: {
		FocusDemo:       {0.40, 0.40, 0.20},
		FocusEnrollment: {0.30, 0.40, 0.30},
	},
}

// NormalizeScore maps a campaign's cost per outcome against the account
// benchmark onto a 0-100 scale. A campaign exactly at benchmark scores 50;
// at maxOutperformance times cheaper than benchmark (or beyond) it scores
// 100; at twice the benchmark cost or worse it scores 0. A zero cost or
// zero benchmark scores 0.
func NormalizeScore(cost, benchmark, maxOutperformance float64) float64 {
	if cost == 0 || benchmark == 0 {
		return 0
	}
	if maxOutperformance <= 0 {
		maxOutperformance = constants.DefaultMaxOutperformance
	}
	ratio := mathutil.Clamp(benchmark/cost, 0, maxOutperformance)
	return math.Round(mathutil.Clamp(ratio/maxOutperformance, 0, 1) * 100)
}

// scoreCampaign blends one campaign's per-window scores into the final
// integer confidence score. Windows where the campaign has no rows
// contribute nothing; the weighted sum divides by the weights actually used
// so missing data shrinks the denominator instead of dragging the score
// down. The base score is then scaled by the seasonality multiplier and
// clamped to [0, 100].
func scoreCampaign(metrics map[string]AggregatedCampaignMetrics, benchmarks map[string]Benchmark, cfg Config) (int, []ScoreDetail) {
	schedule := scheduleFor(cfg.ExperimentVariant, cfg.Focus)

	var weightedSum, usedWeight float64
	details := make([]ScoreDetail, 0, len(lookbacks))

	for i, lb := range lookbacks {
		detail := ScoreDetail{Window: lb.key, Weight: schedule[i]}
		windowMetrics, present := metrics[lb.key]
		if present && windowMetrics.Rows > 0 {
			benchmark := benchmarks[lb.key]
			detail.DemoScore = NormalizeScore(windowMetrics.CostPerDemo, benchmark.CostPerDemo, cfg.Guardrails.MaxOutperformance)
			detail.EnrollmentScore = NormalizeScore(windowMetrics.CostPerEnrollment, benchmark.CostPerEnrollment, cfg.Guardrails.MaxOutperformance)
			switch cfg.Focus {
			case FocusEnrollment:
				detail.Score = detail.EnrollmentScore
			case FocusHybrid:
				detail.Score = 0.5*detail.DemoScore + 0.5*detail.EnrollmentScore
			default:
				detail.Score = detail.DemoScore
			}
			detail.Used = true
			weightedSum += detail.Score * detail.Weight
			usedWeight += detail.Weight
		}
		details = append(details, detail)
	}

	base := 0.0
	if usedWeight > 0 {
		base = weightedSum / usedWeight
	}
	final := mathutil.Clamp(base*cfg.SeasonalityMultiplier, 0, 100)
	return int(math.Round(final)), details
}

// scheduleFor resolves the weight triple for a variant and focus. Unknown
// variants fall back to variant A; hybrid and unknown focuses use the demo
// schedule.
func scheduleFor(variant, focus string) [3]float64 {
	byFocus, ok := weightSchedules[variant]
	if !ok {
		byFocus = weightSchedules[VariantA]
	}
	schedule, ok := byFocus[focus]
	if !ok {
		schedule = byFocus[FocusDemo]
	}
	return schedule
}
