package domain

import (
	"time"
)

// Clock supplies the current time. Injected so that "current month"
// windows are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// WindowKind identifies how a time window was constructed.
type WindowKind string

const (
	WindowCurrentMonth WindowKind = "current_month"
	WindowYear         WindowKind = "year"
	WindowRange        WindowKind = "range"
)

// Window selects records by date. Start is inclusive. For month and
// year windows End is exclusive (first instant of the next period); for
// caller-supplied ranges End is inclusive of the whole end day.
type Window struct {
	Start time.Time
	End   time.Time
	Kind  WindowKind
}

// CurrentMonth builds a window covering the month the clock is in.
func CurrentMonth(clock Clock) Window {
	now := clock.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return Window{
		Kind:  WindowCurrentMonth,
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// MonthOf builds a window covering the given month of the given year.
func MonthOf(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return Window{
		Kind:  WindowCurrentMonth,
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// YearOf builds a window covering the given calendar year.
func YearOf(year int) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return Window{
		Kind:  WindowYear,
		Start: start,
		End:   start.AddDate(1, 0, 0),
	}
}

// RangeOf builds an inclusive [start, end] window.
func RangeOf(start, end time.Time) (Window, error) {
	if start.After(end) {
		return Window{}, ErrInvalidDateRange
	}

	return Window{
		Kind:  WindowRange,
		Start: start,
		// Inclusive of the end date: extend to the first instant past it.
		End: end.AddDate(0, 0, 1),
	}, nil
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// FilterRecords returns the records whose date falls inside the window,
// optionally restricted to a single owning user. Empty userID means all
// users (global aggregation). The input slice is never mutated.
func FilterRecords(records []*Record, window Window, userID string) []*Record {
	out := make([]*Record, 0, len(records))

	for _, r := range records {
		if userID != "" && r.UserID != userID {
			continue
		}

		if !window.Contains(r.Date) {
			continue
		}

		out = append(out, r)
	}

	return out
}
