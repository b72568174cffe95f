package models

import "time"

// CourseworkItem is one assignment or material item issued to a course.
type CourseworkItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	WorkType      string     `json:"work_type,omitempty"`
	DueDate       *Date      `json:"due_date,omitempty"`
	DueTime       *TimeOfDay `json:"due_time,omitempty"`
	CreationTime  time.Time  `json:"creation_time"`
	UpdateTime    time.Time  `json:"update_time"`
	AlternateLink string     `json:"alternate_link,omitempty"`
}

// DueInstant returns the UTC instant the item is due, when a due date is
// present. Missing time-of-day components default to midnight UTC.
func (c CourseworkItem) DueInstant() (time.Time, bool) {
	if c.DueDate == nil {
		return time.Time{}, false
	}
	return c.DueDate.At(c.DueTime), true
}

// EffectiveTimestamp is the instant used for date-window filtering: the due
// instant when known, the last update otherwise.
func (c CourseworkItem) EffectiveTimestamp() time.Time {
	if due, ok := c.DueInstant(); ok {
		return due
	}
	return c.UpdateTime
}
