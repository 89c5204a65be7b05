// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/adlumen/budget-engine/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in row data and config files and
	// is also the output date format.
	DateTimeLayout = constants.DateTimeLayout
)

// rowDateLayouts lists the formats accepted for dates arriving from
// upstream exports, tried in order.
var rowDateLayouts = []string{
	DateTimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseRowDate parses a date string from an upstream export, trying each
// accepted layout in order. The second return value reports whether any
// layout matched.
func ParseRowDate(dateStr string) (time.Time, bool) {
	for _, layout := range rowDateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AddDays returns the date offset by the given number of days.
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

// DaysBetween returns the number of whole days from first to second,
// negative when second is before first. Both times are truncated to their
// calendar date before differencing so partial days never round oddly.
func DaysBetween(first, second time.Time) int {
	firstDay := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	secondDay := time.Date(second.Year(), second.Month(), second.Day(), 0, 0, 0, 0, time.UTC)
	return int(secondDay.Sub(firstDay).Hours() / 24)
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
