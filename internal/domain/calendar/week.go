package calendar

import (
	"fmt"
	"time"
)

// DaysPerWeek is the fixed window length.
const DaysPerWeek = 7

const dateKeyLayout = "2006-01-02"

// Window is a Monday-first 7-day range. Days[i] is Start plus i calendar days in Start's location.
type Window struct {
	Start time.Time
	Days  [DaysPerWeek]time.Time
}

// NewWindow derives the window containing ref.
func NewWindow(ref time.Time) Window {
	start := WeekStart(ref)
	w := Window{Start: start}
	for i := 0; i < DaysPerWeek; i++ {
		w.Days[i] = startOfDay(start.Year(), start.Month(), start.Day()+i, start.Location())
	}
	return w
}

// WeekStart returns midnight on the Monday of the week containing t.
// Sunday belongs to the week that started six days earlier. In zones where a clock change
// skips that midnight, the result is the first instant of the Monday instead.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t.Year(), t.Month(), t.Day()-offset, t.Location())
}

// startOfDay returns the first instant of the calendar day y-m-d in loc. time.Date resolves a
// skipped midnight to either side of the jump, and in zones west of UTC that side is the
// evening before, so that case is moved to the end of its zone period.
func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
	start := time.Date(noon.Year(), noon.Month(), noon.Day(), 0, 0, 0, 0, loc)
	if start.Day() != noon.Day() {
		_, end := start.ZoneBounds()
		start = end
	}
	return start
}

func addDays(t time.Time, n int) time.Time {
	shifted := t.AddDate(0, 0, n)
	want := time.Date(t.Year(), t.Month(), t.Day()+n, 12, 0, 0, 0, t.Location())
	if shifted.Day() != want.Day() {
		return startOfDay(want.Year(), want.Month(), want.Day(), t.Location())
	}
	return shifted
}

// WeekDays returns the seven days, Monday through Sunday, of the week containing t.
func WeekDays(t time.Time) []time.Time {
	w := NewWindow(t)
	days := make([]time.Time, DaysPerWeek)
	copy(days, w.Days[:])
	return days
}

// NextWeek shifts the reference date forward by one week.
func NextWeek(t time.Time) time.Time {
	return addDays(t, DaysPerWeek)
}

// PreviousWeek shifts the reference date back by one week.
func PreviousWeek(t time.Time) time.Time {
	return addDays(t, -DaysPerWeek)
}

// End returns the exclusive end of the window: the Monday after Start.
func (w Window) End() time.Time {
	return startOfDay(w.Start.Year(), w.Start.Month(), w.Start.Day()+DaysPerWeek, w.Start.Location())
}

// Next returns the following window.
func (w Window) Next() Window {
	return NewWindow(NextWeek(w.Start))
}

// Previous returns the preceding window.
func (w Window) Previous() Window {
	return NewWindow(PreviousWeek(w.Start))
}

// Key identifies the window by its Monday.
func (w Window) Key() string {
	return DateKey(w.Start)
}

// Contains reports whether a YYYY-MM-DD key falls inside the window.
func (w Window) Contains(key string) bool {
	return key >= DateKey(w.Start) && key < DateKey(w.End())
}

// Header renders the window label.
func (w Window) Header() string {
	return FormatWeekHeader(w.Days[:])
}

// DateKey formats t as YYYY-MM-DD from its own calendar fields. Converting to UTC first
// would shift the day for zones ahead of UTC, so t's location is kept as is.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey parses a YYYY-MM-DD key as the start of that day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return time.Time{}, err
	}
	return startOfDay(parsed.Year(), parsed.Month(), parsed.Day(), loc), nil
}

// FormatWeekHeader renders "October 27 – November 2, 2025" from the first and last of seven days.
// Fewer than seven days yields an empty label.
func FormatWeekHeader(days []time.Time) string {
	if len(days) < DaysPerWeek {
		return ""
	}
	start := days[0]
	end := days[DaysPerWeek-1]
	return start.Format("January 2") + " – " + end.Format("January 2, 2006")
}

// HourSlotLabel renders the time column label for an hour slot.
func HourSlotLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
