// Package earnings holds the client-side calendar logic for the weekly
// earnings view.
package earnings

import "time"

// Range is a reporting window. End is the last second inside the window.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeekRange returns the Monday 00:00:00 to Saturday 23:59:59 UTC window that
// contains t. Sunday belongs to the window that ended the day before.
func WeekRange(t time.Time) Range {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	back := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		back = 6
	}

	start := day.AddDate(0, 0, -back)
	end := start.AddDate(0, 0, 5).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return Range{Start: start, End: end}
}

// Contains reports whether t falls inside the window, both ends included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Next returns the window one week later.
func (r Range) Next() Range {
	return Range{Start: r.Start.AddDate(0, 0, 7), End: r.End.AddDate(0, 0, 7)}
}

// Prev returns the window one week earlier.
func (r Range) Prev() Range {
	return Range{Start: r.Start.AddDate(0, 0, -7), End: r.End.AddDate(0, 0, -7)}
}

// Label formats the window the way the earnings screen titles it.
func (r Range) Label() string {
	return r.Start.Format("Mon 2 Jan") + " - " + r.End.Format("Sat 2 Jan 2006")
}
