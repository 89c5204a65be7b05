// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/adlumen/budget-engine/pkg/constants"
	"github.com/adlumen/budget-engine/pkg/datetime"
)

// EngineSettings carries the fields ValidateEngineSettings inspects, in
// file form.
type EngineSettings struct {
	Focus                 string
	Timeframe             int
	HasCustomRange        bool
	CustomRangeStart      string
	CustomRangeEnd        string
	SeasonalityMultiplier float64
	ExperimentVariant     string
}

// CampaignBounds carries one campaign's budget bounds for validation.
type CampaignBounds struct {
	Name      string
	MinBudget float64
	MaxBudget float64
}

var validFocuses = map[string]struct{}{
	"demo":       {},
	"enrollment": {},
	"hybrid":     {},
}

var validVariants = map[string]struct{}{
	"A": {},
	"B": {},
}

// ValidateEngineSettings checks the engine run parameters and returns
// warnings. Nothing here is fatal; the conversion layer fails fast on the
// errors that matter (unparseable dates), while these warnings surface
// configuration that will be silently corrected or looks suspicious.
func ValidateEngineSettings(settings EngineSettings, campaigns []CampaignBounds) []string {
	var warnings []string

	if settings.Focus != "" {
		if _, ok := validFocuses[settings.Focus]; !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown focus %q; the engine will default to demo", settings.Focus))
		}
	}

	if settings.ExperimentVariant != "" {
		if _, ok := validVariants[settings.ExperimentVariant]; !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown experiment variant %q; the engine will default to A", settings.ExperimentVariant))
		}
	}

	if !settings.HasCustomRange {
		switch settings.Timeframe {
		case 0, constants.ShortWindowDays, constants.MediumWindowDays, constants.LongWindowDays:
		default:
			warnings = append(warnings, fmt.Sprintf("Timeframe %d is not one of 7, 28, or 90 days; the engine will default to %d",
				settings.Timeframe, constants.MediumWindowDays))
		}
	}

	if settings.HasCustomRange && settings.CustomRangeStart != "" && settings.CustomRangeEnd != "" {
		if before, err := datetime.DateBeforeDate(settings.CustomRangeEnd, settings.CustomRangeStart); err == nil && before {
			warnings = append(warnings, fmt.Sprintf("Custom range end %s is before start %s; all windows will be empty",
				settings.CustomRangeEnd, settings.CustomRangeStart))
		}
	}

	if settings.SeasonalityMultiplier < 0 {
		warnings = append(warnings, "Seasonality multiplier is negative; the engine will default to 1.0")
	} else if settings.SeasonalityMultiplier > 0 &&
		(settings.SeasonalityMultiplier < constants.SeasonalityTypicalMin || settings.SeasonalityMultiplier > constants.SeasonalityTypicalMax) {
		warnings = append(warnings, fmt.Sprintf("Seasonality multiplier %.2f is outside the typical %.1f-%.1f range",
			settings.SeasonalityMultiplier, constants.SeasonalityTypicalMin, constants.SeasonalityTypicalMax))
	}

	for _, campaign := range campaigns {
		if campaign.MaxBudget > 0 && campaign.MinBudget > campaign.MaxBudget {
			warnings = append(warnings, fmt.Sprintf("Campaign %q has minBudget %.2f above maxBudget %.2f",
				campaign.Name, campaign.MinBudget, campaign.MaxBudget))
		}
	}

	return warnings
}
