package config

import (
	"fmt"
	"time"

	"github.com/adlumen/budget-engine/internal/engine"
	"github.com/adlumen/budget-engine/pkg/datetime"
)

// ToEngineConfig converts the file-form engine settings into an immutable
// engine.Config, merging guardrail overrides over the defaults. Date fields
// fail fast with the violated field named rather than degrading silently.
func (s *EngineSettings) ToEngineConfig() (engine.Config, error) {
	cfg := engine.Config{
		Focus:                 s.Focus,
		TimeframeSelection:    s.Timeframe,
		SeasonalityMultiplier: s.SeasonalityMultiplier,
		EnableGuardrails:      s.EnableGuardrails,
		ExperimentVariant:     s.ExperimentVariant,
	}

	if s.CustomRange != nil {
		start, err := time.Parse(datetime.DateTimeLayout, s.CustomRange.Start)
		if err != nil {
			return cfg, fmt.Errorf("invalid customRange.start %q: %w", s.CustomRange.Start, err)
		}
		end, err := time.Parse(datetime.DateTimeLayout, s.CustomRange.End)
		if err != nil {
			return cfg, fmt.Errorf("invalid customRange.end %q: %w", s.CustomRange.End, err)
		}
		cfg.CustomRange = &engine.DateRange{Start: start, End: end}
	}

	cfg.Guardrails = engine.MergeGuardrails(engine.DefaultGuardrails(), s.Guardrails.toOverrides())
	return cfg, nil
}

func (g GuardrailSettings) toOverrides() *engine.GuardrailOverrides {
	return &engine.GuardrailOverrides{
		MinDaysBetweenChanges: g.MinDaysBetweenChanges,
		StopLossSpend:         g.StopLossSpend,
		UtilizationThreshold:  g.UtilizationThreshold,
		MaxOutperformance:     g.MaxOutperformance,
		DefaultStepPercent:    g.DefaultStepPercent,
		MaxStepPercent:        g.MaxStepPercent,
	}
}

// EngineCampaignSettings converts the per-campaign override blocks into
// engine types, parsing last-change dates. Unparseable dates fail fast.
func (c *Configuration) EngineCampaignSettings() (map[string]engine.CampaignSettings, error) {
	if len(c.Campaigns) == 0 {
		return nil, nil
	}
	settings := make(map[string]engine.CampaignSettings, len(c.Campaigns))
	for name, campaign := range c.Campaigns {
		converted := engine.CampaignSettings{
			MinBudget: campaign.MinBudget,
			MaxBudget: campaign.MaxBudget,
		}
		if campaign.LastBudgetChange != "" {
			changed, err := time.Parse(datetime.DateTimeLayout, campaign.LastBudgetChange)
			if err != nil {
				return nil, fmt.Errorf("invalid lastBudgetChange %q for campaign %q: %w", campaign.LastBudgetChange, name, err)
			}
			converted.LastBudgetChangeDate = &changed
		}
		settings[name] = converted
	}
	return settings, nil
}
