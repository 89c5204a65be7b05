package config

import (
	"strings"
	"testing"
)

const sampleConfig = `engine:
  focus: enrollment
  timeframe: 7
  seasonalityMultiplier: 1.2
  enableGuardrails: true
  experimentVariant: B
  guardrails:
    stopLossSpend: 2000
    minDaysBetweenChanges: 14
campaigns:
  Brand Search:
    minBudget: 100
    maxBudget: 1000
    lastBudgetChange: 2026-06-20
  brand search:
    minBudget: 50
    maxBudget: 500
logging:
  level: debug
  format: console
output:
  format: csv
server:
  address: ":9090"
  maxBodySize: 1MB
`

func TestLoadConfigurationFromReader(t *testing.T) {
	configuration, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if configuration.Engine.Focus != "enrollment" {
		t.Errorf("Engine.Focus = %s, expected enrollment", configuration.Engine.Focus)
	}
	if configuration.Engine.Timeframe != 7 {
		t.Errorf("Engine.Timeframe = %d, expected 7", configuration.Engine.Timeframe)
	}
	if configuration.Engine.SeasonalityMultiplier != 1.2 {
		t.Errorf("Engine.SeasonalityMultiplier = %f, expected 1.2", configuration.Engine.SeasonalityMultiplier)
	}
	if !configuration.Engine.EnableGuardrails {
		t.Error("Engine.EnableGuardrails = false, expected true")
	}
	if configuration.Engine.ExperimentVariant != "B" {
		t.Errorf("Engine.ExperimentVariant = %s, expected B", configuration.Engine.ExperimentVariant)
	}
	if configuration.Engine.Guardrails.StopLossSpend == nil || *configuration.Engine.Guardrails.StopLossSpend != 2000 {
		t.Errorf("Guardrails.StopLossSpend = %v, expected 2000", configuration.Engine.Guardrails.StopLossSpend)
	}
	if configuration.Engine.Guardrails.UtilizationThreshold != nil {
		t.Errorf("Guardrails.UtilizationThreshold = %v, expected nil for an unset override", configuration.Engine.Guardrails.UtilizationThreshold)
	}
	if configuration.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, expected debug", configuration.Logging.Level)
	}
	if configuration.Output.Format != "csv" {
		t.Errorf("Output.Format = %s, expected csv", configuration.Output.Format)
	}
	if configuration.Server.Address != ":9090" {
		t.Errorf("Server.Address = %s, expected :9090", configuration.Server.Address)
	}
	if configuration.Server.MaxBodySize != "1MB" {
		t.Errorf("Server.MaxBodySize = %s, expected 1MB", configuration.Server.MaxBodySize)
	}
}

// Campaign names differing only in case are distinct identities and must
// survive the config load verbatim.
func TestLoadConfigurationPreservesCampaignCase(t *testing.T) {
	configuration, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if len(configuration.Campaigns) != 2 {
		t.Fatalf("got %d campaigns, expected 2", len(configuration.Campaigns))
	}
	upper, ok := configuration.Campaigns["Brand Search"]
	if !ok {
		t.Fatal("campaign key \"Brand Search\" lost its casing")
	}
	if upper.MinBudget != 100 || upper.MaxBudget != 1000 {
		t.Errorf("Brand Search bounds = [%.0f, %.0f], expected [100, 1000]", upper.MinBudget, upper.MaxBudget)
	}
	if upper.LastBudgetChange != "2026-06-20" {
		t.Errorf("Brand Search lastBudgetChange = %s, expected 2026-06-20", upper.LastBudgetChange)
	}
	lower, ok := configuration.Campaigns["brand search"]
	if !ok {
		t.Fatal("campaign key \"brand search\" missing")
	}
	if lower.MinBudget != 50 || lower.MaxBudget != 500 {
		t.Errorf("brand search bounds = [%.0f, %.0f], expected [50, 500]", lower.MinBudget, lower.MaxBudget)
	}
}

func TestLoadConfigurationInvalidYAML(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("engine: [not: a map")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration("does-not-exist.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	configuration := &Configuration{
		Engine: EngineSettings{
			Focus:                 "conversions",
			Timeframe:             13,
			SeasonalityMultiplier: 1,
			ExperimentVariant:     "C",
		},
		Campaigns: map[string]CampaignSettings{
			"Inverted": {MinBudget: 500, MaxBudget: 100},
		},
	}

	warnings := configuration.ValidateConfiguration()
	if len(warnings) < 3 {
		t.Fatalf("got %d warnings, expected at least 3: %v", len(warnings), warnings)
	}

	assertWarning := func(substr string) {
		t.Helper()
		for _, w := range warnings {
			if strings.Contains(w, substr) {
				return
			}
		}
		t.Errorf("no warning mentioning %q in %v", substr, warnings)
	}
	assertWarning("focus")
	assertWarning("Timeframe")
	assertWarning("Inverted")
}

func TestValidateConfigurationClean(t *testing.T) {
	configuration := &Configuration{
		Engine: EngineSettings{
			Focus:                 "demo",
			Timeframe:             28,
			SeasonalityMultiplier: 1,
			ExperimentVariant:     "A",
		},
	}
	if warnings := configuration.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}
