package engine

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Recommend runs the full pipeline over the input batch and returns one
// Recommendation per distinct campaign seen anywhere in the rows, sorted by
// campaign name. The computation is pure and safe to invoke concurrently
// for independent inputs. An empty batch returns an empty slice.
func Recommend(logger *zap.Logger, input Input) []Recommendation {
	return RecommendAt(logger, input, time.Now())
}

// RecommendAt is Recommend with an injectable clock. now only matters when
// the batch carries no parseable dates and no custom range; it then becomes
// the evaluation end date.
func RecommendAt(logger *zap.Logger, input Input, now time.Time) []Recommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := input.Config.withDefaults()

	windows := BuildWindows(input.Rows, cfg, now)

	fixedMetrics := make(map[string]map[string]AggregatedCampaignMetrics, len(lookbacks))
	benchmarks := make(map[string]Benchmark, len(lookbacks))
	for _, lb := range lookbacks {
		aggregated := AggregateCampaigns(windows.Fixed[lb.key])
		fixedMetrics[lb.key] = aggregated
		benchmarks[lb.key] = ComputeBenchmark(aggregated)
	}
	selectedMetrics := AggregateCampaigns(windows.Selected)

	// Every campaign seen anywhere in the batch gets a recommendation, even
	// with zero activity in the selected window.
	campaigns := campaignNames(input.Rows)

	recommendations := make([]Recommendation, 0, len(campaigns))
	for _, campaign := range campaigns {
		perWindow := make(map[string]AggregatedCampaignMetrics, len(lookbacks))
		for _, lb := range lookbacks {
			if metrics, ok := fixedMetrics[lb.key][campaign]; ok {
				perWindow[lb.key] = metrics
			}
		}

		score, details := scoreCampaign(perWindow, benchmarks, cfg)

		var settings *CampaignSettings
		if s, ok := input.CampaignSettings[campaign]; ok {
			settings = &s
		}

		selected := selectedMetrics[campaign]
		selected.Campaign = campaign

		rec := evaluateDecision(decisionInput{
			campaign:  campaign,
			score:     score,
			selected:  selected,
			shortTerm: fixedMetrics[WindowShort][campaign],
			medium:    fixedMetrics[WindowMedium][campaign],
			benchmark: benchmarks[WindowMedium],
			settings:  settings,
			end:       windows.End,
		}, cfg)
		rec.ScoreDetail = details
		rec.TimeframeMetrics = timeframeMetrics(campaign, perWindow, selected)

		logger.Debug("campaign evaluated",
			zap.String("op", "engine.Recommend"),
			zap.String("campaign", campaign),
			zap.Int("confidence", rec.ConfidenceScore),
			zap.String("action", rec.Action),
		)
		recommendations = append(recommendations, rec)
	}

	logger.Info("recommendations computed",
		zap.String("op", "engine.Recommend"),
		zap.Int("rows", len(input.Rows)),
		zap.Int("campaigns", len(recommendations)),
		zap.String("focus", cfg.Focus),
		zap.String("variant", cfg.ExperimentVariant),
	)
	return recommendations
}

// campaignNames returns the distinct campaign identities in the batch,
// sorted for deterministic output. Rows with unparseable dates still count;
// they are only excluded from window membership.
func campaignNames(rows []PerformanceRow) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range rows {
		if _, ok := seen[row.Campaign]; ok {
			continue
		}
		seen[row.Campaign] = struct{}{}
		names = append(names, row.Campaign)
	}
	sort.Strings(names)
	return names
}

// timeframeMetrics assembles the per-window detail map, filling absent
// windows with zero-valued metrics rather than omitting them.
func timeframeMetrics(campaign string, perWindow map[string]AggregatedCampaignMetrics, selected AggregatedCampaignMetrics) map[string]AggregatedCampaignMetrics {
	out := make(map[string]AggregatedCampaignMetrics, len(lookbacks)+1)
	for _, lb := range lookbacks {
		metrics := perWindow[lb.key]
		metrics.Campaign = campaign
		out[lb.key] = metrics
	}
	out[WindowSelected] = selected
	return out
}
