package normalize

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/adlumen/budget-engine/internal/engine"
)

// FromJSON reads a JSON array of raw rows and returns the coerced batch.
func FromJSON(r io.Reader) ([]engine.PerformanceRow, error) {
	var raw []RawRow
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return Rows(raw), nil
}

// csvColumns maps canonical header keys to RawRow field setters. Header
// matching ignores case, spaces, and underscores.
var csvColumns = map[string]func(*RawRow, string){
	"date":                 func(r *RawRow, v string) { r.Date = v },
	"campaign":             func(r *RawRow, v string) { r.Campaign = v },
	"spend":                func(r *RawRow, v string) { r.Spend = v },
	"leads":                func(r *RawRow, v string) { r.Leads = v },
	"demos":                func(r *RawRow, v string) { r.Demos = v },
	"enrollments":          func(r *RawRow, v string) { r.Enrollments = v },
	"conversions":          func(r *RawRow, v string) { r.Conversions = v },
	"budget":               func(r *RawRow, v string) { r.Budget = v },
	"bidstrategy":          func(r *RawRow, v string) { r.BidStrategy = v },
	"tcpa":                 func(r *RawRow, v string) { r.TCPA = v },
	"impressions":          func(r *RawRow, v string) { r.Impressions = v },
	"clicks":               func(r *RawRow, v string) { r.Clicks = v },
	"budgetutilization":    func(r *RawRow, v string) { r.BudgetUtilization = v },
	"lastbudgetchangedate": func(r *RawRow, v string) { r.LastBudgetChangeDate = v },
}

// FromCSV reads a CSV export with a header row and returns the coerced
// batch. Unrecognized columns are ignored; missing columns leave their
// fields empty, which coerce to zero values downstream.
func FromCSV(r io.Reader) ([]engine.PerformanceRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	setters := make([]func(*RawRow, string), len(header))
	matched := 0
	for i, column := range header {
		if setter, ok := csvColumns[canonicalHeader(column)]; ok {
			setters[i] = setter
			matched++
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("no recognized columns in CSV header %v", header)
	}

	var rows []engine.PerformanceRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		var raw RawRow
		for i, value := range record {
			if i < len(setters) && setters[i] != nil {
				setters[i](&raw, value)
			}
		}
		rows = append(rows, raw.Row())
	}
	return rows, nil
}

func canonicalHeader(column string) string {
	column = strings.ToLower(strings.TrimSpace(column))
	column = strings.ReplaceAll(column, " ", "")
	column = strings.ReplaceAll(column, "_", "")
	return column
}
