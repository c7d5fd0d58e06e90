package model

import "time"

// TimeLayout is the timestamp format used across the persisted state,
// e.g. "31/12/2025 23:59:59".
const TimeLayout = "02/01/2006 15:04:05"

// DateLayout is the date prefix of TimeLayout, used by the daily reports.
const DateLayout = "02/01/2006"

// FormatTime renders a timestamp in the persisted format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// SameDay reports whether a persisted timestamp falls on the given day.
// Empty timestamps never match.
func SameDay(ts string, day time.Time) bool {
	if len(ts) < len(DateLayout) {
		return false
	}
	return ts[:len(DateLayout)] == day.Format(DateLayout)
}
