package services

import (
	"fmt"
	"time"
)

var weekdayOffsets = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// ValidWeekday reports whether name is one of the seven English weekday names.
func ValidWeekday(name string) bool {
	_, ok := weekdayOffsets[name]
	return ok
}

// firstMonday returns the first Monday of the year. Weeks are counted from
// it: days before belong to week 0, the first Monday starts week 1.
func firstMonday(year int) time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// DateFromWeek resolves (week number, weekday name) to a calendar date in
// the given year.
func DateFromWeek(week int, weekday string, year int) (time.Time, error) {
	offset, ok := weekdayOffsets[weekday]
	if !ok {
		return time.Time{}, fmt.Errorf("date from week: unknown weekday %q", weekday)
	}
	if week < 0 {
		return time.Time{}, fmt.Errorf("date from week: week number %d out of range", week)
	}

	monday := firstMonday(year).AddDate(0, 0, (week-1)*7)
	return monday.AddDate(0, 0, offset), nil
}

// CurrentWeek returns the week number of t, counting Monday-started weeks
// from the first Monday of the year (days before it are week 0).
func CurrentWeek(t time.Time) int {
	t = t.UTC().Truncate(24 * time.Hour)
	monday := firstMonday(t.Year())
	if t.Before(monday) {
		return 0
	}
	return int(t.Sub(monday).Hours()/24/7) + 1
}

// Daily planning window: rounds start no earlier than 08:00 and end by
// 16:00 on the target date.
const (
	windowStartHour = 8
	windowEndHour   = 16
)

// PlanningWindow returns the optimization time window for the selected
// weekday and week. A nil week means the current week.
func PlanningWindow(weekday string, week *int, now time.Time) (start, end time.Time, err error) {
	w := 0
	if week != nil {
		w = *week
	} else {
		w = CurrentWeek(now)
	}

	date, err := DateFromWeek(w, weekday, now.Year())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("planning window: %w", err)
	}

	start = time.Date(date.Year(), date.Month(), date.Day(), windowStartHour, 0, 0, 0, time.UTC)
	end = time.Date(date.Year(), date.Month(), date.Day(), windowEndHour, 0, 0, 0, time.UTC)
	return start, end, nil
}
