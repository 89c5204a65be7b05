// Package constants provides shared constants for the budget-engine application.
package constants

// DateTimeLayout is the date format expected in row data and configuration
// files and is also the output date format.
const DateTimeLayout = "2006-01-02"

// Look-back window lengths in days.
const (
	// ShortWindowDays is the short look-back window
	ShortWindowDays = 7

	// MediumWindowDays is the medium look-back window, also the default
	// selected timeframe
	MediumWindowDays = 28

	// LongWindowDays is the long look-back window
	LongWindowDays = 90
)

// Action band thresholds; the highest threshold at or below the confidence
// score wins.
const (
	// ScaleThreshold is the minimum confidence score for a Scale action
	ScaleThreshold = 80

	// HoldThreshold is the minimum confidence score for a Hold action
	HoldThreshold = 60

	// WatchThreshold is the minimum confidence score for a Watch action
	WatchThreshold = 40

	// DescaleThreshold is the minimum confidence score for a Descale action
	DescaleThreshold = 0
)

// Guardrail defaults
const (
	// DefaultMinDaysBetweenChanges is the cooldown period between budget changes
	DefaultMinDaysBetweenChanges = 7

	// DefaultStopLossSpend is the 7-day spend above which zero conversions
	// raise the stop-loss flag
	DefaultStopLossSpend = 1500.0

	// DefaultUtilizationThreshold is the budget utilization below which a
	// tCPA bid strategy shifts the adjustment lever to the target CPA
	DefaultUtilizationThreshold = 0.75

	// DefaultMaxOutperformance caps the benchmark/cost ratio during score
	// normalization
	DefaultMaxOutperformance = 2.0

	// DefaultStepPercent is the budget step applied on Scale and Descale
	DefaultStepPercent = 0.10

	// DefaultMaxStepPercent is the ceiling for the budget step
	DefaultMaxStepPercent = 0.15
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size for
	// recommendation requests (4 MB)
	DefaultMaxBodyBytes int64 = 4 * 1024 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// SeasonalityTypicalMin is the lower bound of the typical seasonality range
	SeasonalityTypicalMin = 0.7

	// SeasonalityTypicalMax is the upper bound of the typical seasonality range
	SeasonalityTypicalMax = 1.5
)
