// Package normalize converts raw, string-valued performance records from
// upstream exports into the typed rows the recommendation engine consumes.
// The engine itself never parses files or strings; this layer owns the
// coercion contract: numeric fields parse or collapse to 0, dates parse or
// become nil.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/adlumen/budget-engine/internal/engine"
	"github.com/adlumen/budget-engine/pkg/datetime"
	"github.com/adlumen/budget-engine/pkg/mathutil"
)

// RawRow mirrors one record from an upstream export before coercion. All
// fields are strings so malformed exports never fail to decode.
type RawRow struct {
	Date                 string `json:"date"`
	Campaign             string `json:"campaign"`
	Spend                string `json:"spend"`
	Leads                string `json:"leads"`
	Demos                string `json:"demos"`
	Enrollments          string `json:"enrollments"`
	Conversions          string `json:"conversions"`
	Budget               string `json:"budget"`
	BidStrategy          string `json:"bidStrategy"`
	TCPA                 string `json:"tcpa"`
	Impressions          string `json:"impressions"`
	Clicks               string `json:"clicks"`
	BudgetUtilization    string `json:"budgetUtilization"`
	LastBudgetChangeDate string `json:"lastBudgetChangeDate"`
}

// Row coerces the raw record into a typed PerformanceRow.
func (r RawRow) Row() engine.PerformanceRow {
	return engine.PerformanceRow{
		Date:                 parseDate(r.Date),
		Campaign:             r.Campaign,
		Spend:                number(r.Spend),
		Leads:                number(r.Leads),
		Demos:                number(r.Demos),
		Enrollments:          number(r.Enrollments),
		Conversions:          number(r.Conversions),
		Budget:               number(r.Budget),
		BidStrategy:          r.BidStrategy,
		TCPA:                 number(r.TCPA),
		Impressions:          number(r.Impressions),
		Clicks:               number(r.Clicks),
		BudgetUtilization:    fraction(r.BudgetUtilization),
		LastBudgetChangeDate: parseDate(r.LastBudgetChangeDate),
	}
}

// Rows coerces a batch of raw records.
func Rows(raw []RawRow) []engine.PerformanceRow {
	rows := make([]engine.PerformanceRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, r.Row())
	}
	return rows
}

// number parses a numeric field, tolerating currency symbols, thousands
// separators, and surrounding whitespace. Anything unparseable is 0.
func number(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// fraction parses a utilization field into a 0-1 fraction, or nil when the
// field is empty or unparseable. A trailing percent sign scales the value
// down by 100.
func fraction(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if percent {
		v /= 100
	}
	v = mathutil.Clamp(v, 0, 1)
	return &v
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, ok := datetime.ParseRowDate(s)
	if !ok {
		return nil
	}
	return &t
}
