package engine

import "github.com/adlumen/budget-engine/pkg/mathutil"

// AggregateCampaigns groups one window's rows by campaign identity and
// reduces each group to summed and point-in-time metrics. Matching is exact
// string equality: case-sensitive, no trimming. Two campaign names differing
// only in whitespace aggregate separately.
func AggregateCampaigns(rows []PerformanceRow) map[string]AggregatedCampaignMetrics {
	groups := make(map[string][]PerformanceRow)
	for _, row := range rows {
		groups[row.Campaign] = append(groups[row.Campaign], row)
	}

	aggregated := make(map[string]AggregatedCampaignMetrics, len(groups))
	for campaign, group := range groups {
		aggregated[campaign] = reduceCampaign(campaign, group)
	}
	return aggregated
}

func reduceCampaign(campaign string, rows []PerformanceRow) AggregatedCampaignMetrics {
	metrics := AggregatedCampaignMetrics{
		Campaign: campaign,
		Rows:     len(rows),
	}

	var latest *PerformanceRow
	var utilizationSum float64
	utilizationSamples := 0

	for i := range rows {
		row := &rows[i]
		metrics.Spend += row.Spend
		metrics.Leads += row.Leads
		metrics.Demos += row.Demos
		metrics.Enrollments += row.Enrollments
		metrics.Conversions += row.Conversions

		if row.BudgetUtilization != nil {
			utilizationSum += *row.BudgetUtilization
			utilizationSamples++
		}

		if latest == nil {
			latest = row
			continue
		}
		if row.Date != nil && (latest.Date == nil || row.Date.After(*latest.Date)) {
			latest = row
		}
	}

	if latest != nil {
		metrics.Budget = latest.Budget
		metrics.BidStrategy = latest.BidStrategy
		metrics.TCPA = latest.TCPA
	}

	if utilizationSamples > 0 {
		metrics.Utilization = utilizationSum / float64(utilizationSamples)
	} else if metrics.Budget > 0 && metrics.Rows > 0 {
		// Approximation: assumes the latest budget held for every sampled
		// day, so mid-window budget changes skew the figure.
		metrics.Utilization = metrics.Spend / (metrics.Budget * float64(metrics.Rows))
	}

	metrics.CostPerDemo = mathutil.SafeDiv(metrics.Spend, metrics.Demos)
	metrics.CostPerEnrollment = mathutil.SafeDiv(metrics.Spend, metrics.Enrollments)
	return metrics
}
