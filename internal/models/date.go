package models

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no zone attached, as the classroom API
// reports due dates. The zero value means "unset".
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// TimeOfDay is a UTC wall-clock time attached to a due date. Absent
// components are zero.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// UTCStart returns midnight UTC at the start of the calendar day.
func (d Date) UTCStart() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// UTCEnd returns the last millisecond of the calendar day in UTC.
func (d Date) UTCEnd() time.Time {
	return d.UTCStart().Add(24*time.Hour - time.Millisecond)
}

// At combines the date with a time of day into a UTC instant. A nil time of
// day means midnight.
func (d Date) At(tod *TimeOfDay) time.Time {
	if tod == nil {
		return d.UTCStart()
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, tod.Hours, tod.Minutes, tod.Seconds, 0, time.UTC)
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.UTCStart().Format("2006-01-02")
}

// Display renders the date in the human form used by the report views,
// e.g. "Mar 1, 2024".
func (d Date) Display() string {
	return d.UTCStart().Format("Jan 2, 2006")
}
