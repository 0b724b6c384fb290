package entity

import (
	"errors"
	"strings"
	"time"
)

const CalendarDateLayout = "2006-01-02"

var ErrInvalidCalendarDate = errors.New("invalid date format, use YYYY-MM-DD")

// ParseCalendarDate accepts YYYY-MM-DD or an RFC 3339 timestamp and reduces it
// to a calendar day in loc. See CalendarDate.
func ParseCalendarDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidCalendarDate
	}

	if t, err := time.ParseInLocation(CalendarDateLayout, value, loc); err == nil {
		return CalendarDate(t, loc), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidCalendarDate
	}
	return CalendarDate(t, loc), nil
}

// CalendarDate drops the time of day of t as observed in loc and returns
// midnight UTC of that day. Two instants on the same local day always
// normalise to the same value.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatCalendarDate renders a normalised date as YYYY-MM-DD.
func FormatCalendarDate(t time.Time) string {
	return t.UTC().Format(CalendarDateLayout)
}
