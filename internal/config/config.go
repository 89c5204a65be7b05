// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/adlumen/budget-engine/pkg/constants"
	"github.com/adlumen/budget-engine/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DateTimeLayout is the format expected in config files and is also the
// output date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for budget-engine.
type Configuration struct {
	Engine    EngineSettings              `yaml:"engine"`
	Campaigns map[string]CampaignSettings `yaml:"campaigns,omitempty"`
	Logging   LoggingConfig               `yaml:"logging,omitempty"`
	Output    OutputConfig                `yaml:"output,omitempty"`
	Server    ServerConfig                `yaml:"server,omitempty"`
}

// EngineSettings holds the run parameters for the recommendation engine as
// they appear in the config file, before conversion to engine types.
type EngineSettings struct {
	Focus                 string            `yaml:"focus"`
	Timeframe             int               `yaml:"timeframe"`
	CustomRange           *RangeConfig      `yaml:"customRange,omitempty"`
	SeasonalityMultiplier float64           `yaml:"seasonalityMultiplier"`
	EnableGuardrails      bool              `yaml:"enableGuardrails"`
	Guardrails            GuardrailSettings `yaml:"guardrails,omitempty"`
	ExperimentVariant     string            `yaml:"experimentVariant"`
}

// RangeConfig is a custom evaluation window in config-file form.
type RangeConfig struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// GuardrailSettings is a partial override of the default guardrail
// thresholds. Unset fields keep the defaults.
type GuardrailSettings struct {
	MinDaysBetweenChanges *int     `yaml:"minDaysBetweenChanges,omitempty" json:"minDaysBetweenChanges,omitempty"`
	StopLossSpend         *float64 `yaml:"stopLossSpend,omitempty" json:"stopLossSpend,omitempty"`
	UtilizationThreshold  *float64 `yaml:"utilizationThreshold,omitempty" json:"utilizationThreshold,omitempty"`
	MaxOutperformance     *float64 `yaml:"maxOutperformance,omitempty" json:"maxOutperformance,omitempty"`
	DefaultStepPercent    *float64 `yaml:"defaultStepPercent,omitempty" json:"defaultStepPercent,omitempty"`
	MaxStepPercent        *float64 `yaml:"maxStepPercent,omitempty" json:"maxStepPercent,omitempty"`
}

// CampaignSettings is the per-campaign budget override block.
type CampaignSettings struct {
	MinBudget        float64 `yaml:"minBudget" json:"minBudget"`
	MaxBudget        float64 `yaml:"maxBudget" json:"maxBudget"`
	LastBudgetChange string  `yaml:"lastBudgetChange,omitempty" json:"lastBudgetChange,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds HTTP API configuration options. MaxBodySize is a byte
// count with an optional KB/MB suffix.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize string `yaml:"maxBodySize,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return LoadConfigurationFromReader(bytes.NewReader(data))
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an uploaded request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	v := viper.New()
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	// Viper lowercases every key it stores, which would corrupt the
	// case-sensitive campaign identities in the campaigns block. Re-decode
	// that block directly so the keys survive verbatim.
	var campaignBlock struct {
		Campaigns map[string]CampaignSettings `yaml:"campaigns"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &campaignBlock); err != nil {
		return nil, fmt.Errorf("unable to decode campaigns block, %s", err)
	}
	configuration.Campaigns = campaignBlock.Campaigns

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	settings := validation.EngineSettings{
		Focus:                 c.Engine.Focus,
		Timeframe:             c.Engine.Timeframe,
		HasCustomRange:        c.Engine.CustomRange != nil,
		SeasonalityMultiplier: c.Engine.SeasonalityMultiplier,
		ExperimentVariant:     c.Engine.ExperimentVariant,
	}
	if c.Engine.CustomRange != nil {
		settings.CustomRangeStart = c.Engine.CustomRange.Start
		settings.CustomRangeEnd = c.Engine.CustomRange.End
	}

	var campaigns []validation.CampaignBounds
	for name, campaign := range c.Campaigns {
		campaigns = append(campaigns, validation.CampaignBounds{
			Name:      name,
			MinBudget: campaign.MinBudget,
			MaxBudget: campaign.MaxBudget,
		})
	}

	return validation.ValidateEngineSettings(settings, campaigns)
}
