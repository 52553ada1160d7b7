package domain

import (
	"fmt"
	"time"
)

// PeriodKeyLayout is the date layout of period keys.
const PeriodKeyLayout = "2006-01-02"

// WeekStart returns midnight of the Monday of the week containing t, in t's location.
// Sunday is treated as day 7 of the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
}

// PeriodKey returns the canonical Monday date identifying the reporting week of t.
func PeriodKey(t time.Time) string {
	return WeekStart(t).Format(PeriodKeyLayout)
}

// PeriodRange returns the previous week (Monday to Sunday) as "M/D ~ M/D".
// The report's "completed" section covers this range.
func PeriodRange(t time.Time) string {
	lastMonday := WeekStart(t).AddDate(0, 0, -7)
	lastSunday := lastMonday.AddDate(0, 0, 6)
	return fmt.Sprintf("%d/%d ~ %d/%d",
		int(lastMonday.Month()), lastMonday.Day(),
		int(lastSunday.Month()), lastSunday.Day())
}
