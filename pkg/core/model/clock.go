package model

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

const minutesPerDay = 24 * 60

// Window is a time window starting on Date, in minutes after that date's midnight,
// [Start, End). A window whose end clock time is not after its start runs overnight,
// so End exceeds a day's minutes.
type Window struct {
	Date  string
	Start int
	End   int

	// day counts days since the Unix epoch and places windows on different dates
	// on one timeline
	day int
}

// ParseClock converts an HH:MM string into minutes after midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NewWindow builds a Window. An end before the start means the window ends on
// the following day; identical start and end times are rejected.
func NewWindow(date, start, end string) (Window, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return Window{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if e == s {
		return Window{}, fmt.Errorf("window %s %s-%s is empty", date, start, end)
	}
	if e < s {
		e += minutesPerDay
	}
	return Window{Date: date, Start: s, End: e, day: int(d.Unix() / 86400)}, nil
}

// Overnight reports whether the window ends on the day after it starts
func (w Window) Overnight() bool {
	return w.End > minutesPerDay
}

func (w Window) bounds() (int, int) {
	offset := w.day * minutesPerDay
	return offset + w.Start, offset + w.End
}

// Overlaps reports whether two windows intersect, including overnight windows that
// reach into the next date
func (w Window) Overlaps(other Window) bool {
	start, end := w.bounds()
	otherStart, otherEnd := other.bounds()
	return start < otherEnd && otherStart < end
}

// Contains reports whether w fully contains other
func (w Window) Contains(other Window) bool {
	start, end := w.bounds()
	otherStart, otherEnd := other.bounds()
	return start <= otherStart && end >= otherEnd
}

// Hours is the length of the window in hours
func (w Window) Hours() float64 {
	return float64(w.End-w.Start) / 60
}

// ISOWeek returns the ISO year and week of a YYYY-MM-DD date
func ISOWeek(date string) (int, int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	year, week := t.ISOWeek()
	return year, week, nil
}
