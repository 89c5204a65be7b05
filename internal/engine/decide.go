package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/adlumen/budget-engine/pkg/constants"
	"github.com/adlumen/budget-engine/pkg/datetime"
	"github.com/adlumen/budget-engine/pkg/format"
	"github.com/adlumen/budget-engine/pkg/mathutil"
)

// actionBands is ordered highest threshold first; the first band whose
// minimum does not exceed the score wins.
var actionBands = []struct {
	min    int
	action string
}{
	{constants.ScaleThreshold, ActionScale},
	{constants.HoldThreshold, ActionHold},
	{constants.WatchThreshold, ActionWatch},
	{constants.DescaleThreshold, ActionDescale},
}

// ActionForScore maps a confidence score to its action band. Hold is the
// fallback when no band matches.
func ActionForScore(score int) string {
	for _, band := range actionBands {
		if score >= band.min {
			return band.action
		}
	}
	return ActionHold
}

// decisionInput bundles everything the evaluator needs for one campaign.
type decisionInput struct {
	campaign  string
	score     int
	selected  AggregatedCampaignMetrics // caller-selected window
	shortTerm AggregatedCampaignMetrics // 7-day window, for stop-loss
	medium    AggregatedCampaignMetrics // 28-day window, for the reason summary
	benchmark Benchmark                 // 28-day benchmark
	settings  *CampaignSettings
	end       time.Time
}

// evaluateDecision maps the confidence score to an action, applies the
// enabled guardrails, and computes the bounded budget delta. The action
// override is one-shot: band lookup, then an optional cooldown override to
// Hold. Stop-loss is advisory and never changes the action. The guardrails
// list is always non-nil so an untriggered run exports as an empty list.
func evaluateDecision(in decisionInput, cfg Config) Recommendation {
	rec := Recommendation{
		Campaign:        in.campaign,
		Action:          ActionForScore(in.score),
		AdjustmentType:  AdjustmentBudget,
		ConfidenceScore: in.score,
		CurrentBudget:   in.selected.Budget,
		Utilization:     in.selected.Utilization,
		Guardrails:      []string{},
	}

	if cfg.EnableGuardrails {
		applyGuardrails(&rec, in, cfg)
	}

	stepPercent := mathutil.Clamp(cfg.Guardrails.DefaultStepPercent, 0, cfg.Guardrails.MaxStepPercent)
	minBudget, maxBudget := budgetBounds(in.settings, cfg.EnableGuardrails)

	// Scaled budgets round to cents; Hold and Watch pass the current budget
	// through untouched.
	rec.RecommendedBudget = rec.CurrentBudget
	switch rec.Action {
	case ActionScale:
		rec.RecommendedBudget = mathutil.Round(mathutil.Clamp(rec.CurrentBudget*(1+stepPercent), minBudget, maxBudget))
	case ActionDescale:
		rec.RecommendedBudget = mathutil.Round(mathutil.Clamp(rec.CurrentBudget*(1-stepPercent), minBudget, maxBudget))
	}
	rec.BudgetDelta = mathutil.Round(rec.RecommendedBudget - rec.CurrentBudget)

	rec.ReasonSummary = buildReasonSummary(in, cfg, &rec)
	return rec
}

func applyGuardrails(rec *Recommendation, in decisionInput, cfg Config) {
	if in.settings != nil && in.settings.LastBudgetChangeDate != nil {
		daysSince := datetime.DaysBetween(*in.settings.LastBudgetChangeDate, in.end)
		if daysSince >= 0 && daysSince < cfg.Guardrails.MinDaysBetweenChanges {
			rec.Action = ActionHold
			rec.Guardrails = append(rec.Guardrails, fmt.Sprintf(
				"Budget changed %d day(s) ago; holding until %d days have passed.",
				daysSince, cfg.Guardrails.MinDaysBetweenChanges))
		}
	}

	if in.shortTerm.Spend > cfg.Guardrails.StopLossSpend && in.shortTerm.Conversions == 0 {
		rec.StopLoss = true
		rec.Guardrails = append(rec.Guardrails, fmt.Sprintf(
			"Stop-loss: %s spent over the last 7 days with no conversions.",
			format.Currency(in.shortTerm.Spend)))
	}

	if strings.Contains(strings.ToLower(in.selected.BidStrategy), "tcpa") &&
		in.selected.Utilization < cfg.Guardrails.UtilizationThreshold {
		rec.AdjustmentType = AdjustmentTCPA
	}
}

// budgetBounds resolves the clamp range for the recommended budget. Missing
// settings, or guardrails disabled, leave the budget unconstrained. A
// MaxBudget of zero means no ceiling was configured.
func budgetBounds(settings *CampaignSettings, guardrailsEnabled bool) (float64, float64) {
	if !guardrailsEnabled || settings == nil {
		return 0, math.Inf(1)
	}
	maxBudget := settings.MaxBudget
	if maxBudget <= 0 {
		maxBudget = math.Inf(1)
	}
	return settings.MinBudget, maxBudget
}

// buildReasonSummary assembles the human-readable explanation in a fixed
// order: benchmark comparison, adjustment lever, seasonality, then guardrail
// messages. The order is part of the output contract.
func buildReasonSummary(in decisionInput, cfg Config, rec *Recommendation) string {
	parts := []string{
		benchmarkSentence(in, cfg),
		adjustmentSentence(rec),
	}
	if cfg.SeasonalityMultiplier != 1 {
		parts = append(parts, fmt.Sprintf(
			"Seasonality multiplier %.2f applied to the confidence score.",
			cfg.SeasonalityMultiplier))
	}
	if cfg.EnableGuardrails && len(rec.Guardrails) > 0 {
		parts = append(parts, rec.Guardrails...)
	}
	return strings.Join(parts, " ")
}

// benchmarkSentence compares the 28-day cost per outcome to the account
// benchmark as a signed percentage. Hybrid focus reports the demo dimension.
func benchmarkSentence(in decisionInput, cfg Config) string {
	outcome := "demo"
	cost := in.medium.CostPerDemo
	benchmark := in.benchmark.CostPerDemo
	if cfg.Focus == FocusEnrollment {
		outcome = "enrollment"
		cost = in.medium.CostPerEnrollment
		benchmark = in.benchmark.CostPerEnrollment
	}
	if mathutil.IsZero(cost) || mathutil.IsZero(benchmark) {
		return fmt.Sprintf("No 28-day cost per %s to compare against the account benchmark.", outcome)
	}
	return fmt.Sprintf("28-day cost per %s is %s versus the account benchmark.",
		outcome, format.SignedPercent((cost-benchmark)/benchmark))
}

func adjustmentSentence(rec *Recommendation) string {
	if rec.AdjustmentType == AdjustmentTCPA {
		return fmt.Sprintf("Target CPA adjustment suggested at %s budget utilization.",
			format.Percent(rec.Utilization))
	}
	return fmt.Sprintf("Budget adjustment applies at %s budget utilization.",
		format.Percent(rec.Utilization))
}
