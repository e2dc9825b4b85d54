// Package timeutil holds the calendar-day window computation shared by the
// standup engine, the task engine and the reminder scan. All three must
// agree on what "today" means, so the helper lives in one place.
package timeutil

import "time"

// DayWindow returns the half-open interval [midnight, next midnight)
// containing t in loc. A nil loc falls back to UTC.
func DayWindow(t time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1)
	return start, end
}
