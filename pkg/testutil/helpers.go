// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/adlumen/budget-engine/internal/engine"
	"github.com/adlumen/budget-engine/pkg/datetime"
)

// FindRecommendation finds a recommendation by campaign name in the results
// slice. Returns a pointer to the recommendation if found, nil otherwise.
func FindRecommendation(results []engine.Recommendation, campaign string) *engine.Recommendation {
	for i := range results {
		if results[i].Campaign == campaign {
			return &results[i]
		}
	}
	return nil
}

// Date parses a YYYY-MM-DD string and panics on error. Intended for tests
// where the date is known to be valid.
func Date(dateStr string) time.Time {
	return datetime.MustParseTime(datetime.DateTimeLayout, dateStr)
}

// DatePtr is Date returning a pointer, for PerformanceRow literals.
func DatePtr(dateStr string) *time.Time {
	t := Date(dateStr)
	return &t
}

// Row builds a PerformanceRow with the fields most tests care about.
func Row(date, campaign string, spend, demos, enrollments float64) engine.PerformanceRow {
	return engine.PerformanceRow{
		Date:        DatePtr(date),
		Campaign:    campaign,
		Spend:       spend,
		Demos:       demos,
		Enrollments: enrollments,
	}
}
