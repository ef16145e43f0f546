// Package common contains shared constants, sentinel errors and small
// byte helpers used across dailykeep components.
package common

import "time"

// Layouts for the calendar keys persisted inside domain records.
const (
	// DateLayout formats a day key, e.g. "2024-05-31".
	DateLayout = "2006-01-02"
	// MonthLayout formats a month key, e.g. "2024-05".
	MonthLayout = "2006-01"
	// TimeOfDayLayout formats an hour:minute value, e.g. "20:00".
	TimeOfDayLayout = "15:04"
)

// DayKey returns the local calendar day key of t.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the local calendar month key of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
