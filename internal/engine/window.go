package engine

import (
	"time"

	"github.com/adlumen/budget-engine/pkg/constants"
	"github.com/adlumen/budget-engine/pkg/datetime"
)

// Window keys used in TimeframeMetrics and ScoreDetail.
const (
	WindowShort    = "7d"
	WindowMedium   = "28d"
	WindowLong     = "90d"
	WindowSelected = "selected"
)

// lookbacks lists the fixed look-back windows in scoring order.
var lookbacks = []struct {
	key  string
	days int
}{
	{WindowShort, constants.ShortWindowDays},
	{WindowMedium, constants.MediumWindowDays},
	{WindowLong, constants.LongWindowDays},
}

// WindowSet holds the sliced row sets for one evaluation.
type WindowSet struct {
	End      time.Time
	Fixed    map[string][]PerformanceRow
	Selected []PerformanceRow
}

// BuildWindows slices the full row set into the fixed 7/28/90-day look-back
// windows relative to the evaluation end date, plus the caller-selected
// window. The end date is the custom range end when one is given, otherwise
// the max row date, otherwise now. Rows without a parsed date never enter a
// window.
func BuildWindows(rows []PerformanceRow, cfg Config, now time.Time) WindowSet {
	end := evaluationEnd(rows, cfg, now)

	ws := WindowSet{
		End:   end,
		Fixed: make(map[string][]PerformanceRow, len(lookbacks)),
	}
	for _, lb := range lookbacks {
		ws.Fixed[lb.key] = sliceWindow(rows, datetime.AddDays(end, -lb.days), end)
	}

	if cfg.CustomRange != nil {
		ws.Selected = sliceWindow(rows, cfg.CustomRange.Start, cfg.CustomRange.End)
	} else {
		ws.Selected = sliceWindow(rows, datetime.AddDays(end, -cfg.TimeframeSelection), end)
	}
	return ws
}

func evaluationEnd(rows []PerformanceRow, cfg Config, now time.Time) time.Time {
	if cfg.CustomRange != nil {
		return cfg.CustomRange.End
	}
	var end time.Time
	found := false
	for i := range rows {
		if rows[i].Date == nil {
			continue
		}
		if !found || rows[i].Date.After(end) {
			end = *rows[i].Date
			found = true
		}
	}
	if !found {
		return now
	}
	return end
}

func sliceWindow(rows []PerformanceRow, start, end time.Time) []PerformanceRow {
	var selected []PerformanceRow
	for _, row := range rows {
		if row.Date == nil {
			continue
		}
		if row.Date.Before(start) || row.Date.After(end) {
			continue
		}
		selected = append(selected, row)
	}
	return selected
}
