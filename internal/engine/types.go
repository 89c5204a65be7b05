// Package engine implements the budget recommendation engine: a pure,
// stateless scoring pipeline that turns historical campaign performance rows
// into per-campaign budget actions with auditable explanations.
package engine

import (
	"time"

	"github.com/adlumen/budget-engine/pkg/constants"
)

// Focus values select the funnel stage the engine optimizes budget
// decisions toward.
const (
	FocusDemo       = "demo"
	FocusEnrollment = "enrollment"
	FocusHybrid     = "hybrid"
)

// Experiment variants select alternate scoring weight schedules.
const (
	VariantA = "A"
	VariantB = "B"
)

// Actions a recommendation can carry.
const (
	ActionScale   = "Scale"
	ActionHold    = "Hold"
	ActionWatch   = "Watch"
	ActionDescale = "Descale"
)

// Adjustment types name the lever a recommendation targets.
const (
	AdjustmentBudget = "Budget"
	AdjustmentTCPA   = "TCPA"
)

// PerformanceRow is one day of spend and outcome data for one campaign.
// Numeric fields arrive already coerced by the normalization layer (invalid
// or empty input collapses to 0) and Date is nil when the source value could
// not be parsed; such rows are excluded from every window but still count
// toward the set of known campaigns.
type PerformanceRow struct {
	Date                 *time.Time `json:"date"`
	Campaign             string     `json:"campaign"`
	Spend                float64    `json:"spend"`
	Leads                float64    `json:"leads"`
	Demos                float64    `json:"demos"`
	Enrollments          float64    `json:"enrollments"`
	Conversions          float64    `json:"conversions"`
	Budget               float64    `json:"budget"`
	BidStrategy          string     `json:"bidStrategy"`
	TCPA                 float64    `json:"tcpa"`
	Impressions          float64    `json:"impressions"`
	Clicks               float64    `json:"clicks"`
	BudgetUtilization    *float64   `json:"budgetUtilization,omitempty"`
	LastBudgetChangeDate *time.Time `json:"lastBudgetChangeDate,omitempty"`
}

// CampaignSettings is the per-campaign override supplied by the caller.
// MinBudget <= MaxBudget is expected but not enforced here; that contract
// belongs to the caller.
type CampaignSettings struct {
	MinBudget            float64    `json:"minBudget"`
	MaxBudget            float64    `json:"maxBudget"`
	LastBudgetChangeDate *time.Time `json:"lastBudgetChangeDate,omitempty"`
}

// DateRange bounds a custom evaluation window, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GuardrailThresholds holds the fully-merged guardrail parameters for one
// engine invocation.
type GuardrailThresholds struct {
	MinDaysBetweenChanges int     `json:"minDaysBetweenChanges"`
	StopLossSpend         float64 `json:"stopLossSpend"`
	UtilizationThreshold  float64 `json:"utilizationThreshold"`
	MaxOutperformance     float64 `json:"maxOutperformance"`
	DefaultStepPercent    float64 `json:"defaultStepPercent"`
	MaxStepPercent        float64 `json:"maxStepPercent"`
}

// GuardrailOverrides is a partial override of the default guardrail
// thresholds; nil fields keep the default.
type GuardrailOverrides struct {
	MinDaysBetweenChanges *int     `json:"minDaysBetweenChanges,omitempty"`
	StopLossSpend         *float64 `json:"stopLossSpend,omitempty"`
	UtilizationThreshold  *float64 `json:"utilizationThreshold,omitempty"`
	MaxOutperformance     *float64 `json:"maxOutperformance,omitempty"`
	DefaultStepPercent    *float64 `json:"defaultStepPercent,omitempty"`
	MaxStepPercent        *float64 `json:"maxStepPercent,omitempty"`
}

// DefaultGuardrails returns the stock guardrail thresholds.
func DefaultGuardrails() GuardrailThresholds {
	return GuardrailThresholds{
		MinDaysBetweenChanges: constants.DefaultMinDaysBetweenChanges,
		StopLossSpend:         constants.DefaultStopLossSpend,
		UtilizationThreshold:  constants.DefaultUtilizationThreshold,
		MaxOutperformance:     constants.DefaultMaxOutperformance,
		DefaultStepPercent:    constants.DefaultStepPercent,
		MaxStepPercent:        constants.DefaultMaxStepPercent,
	}
}

// MergeGuardrails returns a new GuardrailThresholds with the non-nil
// override fields applied over base. Neither argument is modified.
func MergeGuardrails(base GuardrailThresholds, overrides *GuardrailOverrides) GuardrailThresholds {
	merged := base
	if overrides == nil {
		return merged
	}
	if overrides.MinDaysBetweenChanges != nil {
		merged.MinDaysBetweenChanges = *overrides.MinDaysBetweenChanges
	}
	if overrides.StopLossSpend != nil {
		merged.StopLossSpend = *overrides.StopLossSpend
	}
	if overrides.UtilizationThreshold != nil {
		merged.UtilizationThreshold = *overrides.UtilizationThreshold
	}
	if overrides.MaxOutperformance != nil {
		merged.MaxOutperformance = *overrides.MaxOutperformance
	}
	if overrides.DefaultStepPercent != nil {
		merged.DefaultStepPercent = *overrides.DefaultStepPercent
	}
	if overrides.MaxStepPercent != nil {
		merged.MaxStepPercent = *overrides.MaxStepPercent
	}
	return merged
}

// Config holds the run parameters for one engine invocation. It is treated
// as immutable; withDefaults returns a corrected copy rather than mutating.
type Config struct {
	Focus                 string              `json:"focus"`
	TimeframeSelection    int                 `json:"timeframeSelection"`
	CustomRange           *DateRange          `json:"customRange,omitempty"`
	SeasonalityMultiplier float64             `json:"seasonalityMultiplier"`
	EnableGuardrails      bool                `json:"enableGuardrails"`
	Guardrails            GuardrailThresholds `json:"guardrails"`
	ExperimentVariant     string              `json:"experimentVariant"`
}

// withDefaults fills unset or degenerate fields so the pipeline always
// operates on usable parameters.
func (c Config) withDefaults() Config {
	if c.Focus == "" {
		c.Focus = FocusDemo
	}
	if c.ExperimentVariant == "" {
		c.ExperimentVariant = VariantA
	}
	switch c.TimeframeSelection {
	case constants.ShortWindowDays, constants.MediumWindowDays, constants.LongWindowDays:
	default:
		c.TimeframeSelection = constants.MediumWindowDays
	}
	if c.SeasonalityMultiplier <= 0 {
		c.SeasonalityMultiplier = 1
	}
	if (c.Guardrails == GuardrailThresholds{}) {
		c.Guardrails = DefaultGuardrails()
	}
	return c
}

// Input is the single entry point contract for the engine.
type Input struct {
	Rows             []PerformanceRow            `json:"rows"`
	Config           Config                      `json:"config"`
	CampaignSettings map[string]CampaignSettings `json:"campaignSettings,omitempty"`
}

// AggregatedCampaignMetrics is the per-window, per-campaign reduction of the
// raw rows. Budget, BidStrategy and TCPA come from the max-date row in the
// window; the cost fields divide zero-safely.
type AggregatedCampaignMetrics struct {
	Campaign          string  `json:"campaign"`
	Spend             float64 `json:"spend"`
	Leads             float64 `json:"leads"`
	Demos             float64 `json:"demos"`
	Enrollments       float64 `json:"enrollments"`
	Conversions       float64 `json:"conversions"`
	Budget            float64 `json:"budget"`
	BidStrategy       string  `json:"bidStrategy"`
	TCPA              float64 `json:"tcpa"`
	Utilization       float64 `json:"utilization"`
	Rows              int     `json:"rows"`
	CostPerDemo       float64 `json:"costPerDemo"`
	CostPerEnrollment float64 `json:"costPerEnrollment"`
}

// Benchmark is the account-wide average cost per outcome within one window.
type Benchmark struct {
	CostPerDemo       float64 `json:"costPerDemo"`
	CostPerEnrollment float64 `json:"costPerEnrollment"`
}

// ScoreDetail records how one fixed window contributed to the blended
// confidence score.
type ScoreDetail struct {
	Window          string  `json:"window"`
	Weight          float64 `json:"weight"`
	DemoScore       float64 `json:"demoScore"`
	EnrollmentScore float64 `json:"enrollmentScore"`
	Score           float64 `json:"score"`
	Used            bool    `json:"used"`
}

// Recommendation is the per-campaign output of one engine invocation. It is
// created fresh on every call and never mutated afterward.
type Recommendation struct {
	Campaign          string                               `json:"campaign"`
	Action            string                               `json:"action"`
	AdjustmentType    string                               `json:"adjustmentType"`
	ConfidenceScore   int                                  `json:"confidenceScore"`
	CurrentBudget     float64                              `json:"currentBudget"`
	RecommendedBudget float64                              `json:"recommendedBudget"`
	BudgetDelta       float64                              `json:"budgetDelta"`
	Utilization       float64                              `json:"utilization"`
	StopLoss          bool                                 `json:"stopLoss"`
	TimeframeMetrics  map[string]AggregatedCampaignMetrics `json:"timeframeMetrics"`
	ScoreDetail       []ScoreDetail                        `json:"scoreDetail"`
	ReasonSummary     string                               `json:"reasonSummary"`
	Guardrails        []string                             `json:"guardrails"`
}
