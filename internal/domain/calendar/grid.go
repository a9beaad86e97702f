package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/yanqian/unievents/internal/domain/event"
)

// GridConfig bounds the visible hour range. Hour slots are [StartHour, EndHour).
type GridConfig struct {
	StartHour int
	EndHour   int
}

// Validate ensures the grid has at least one row within a single day.
func (c GridConfig) Validate() error {
	if c.StartHour <= 0 {
		return errors.New("calendar start hour must be positive")
	}
	if c.EndHour <= c.StartHour {
		return errors.New("calendar end hour must be after start hour")
	}
	if c.EndHour > 24 {
		return errors.New("calendar end hour cannot exceed 24")
	}
	return nil
}

// TotalRows is the number of one-hour rows in the grid.
func (c GridConfig) TotalRows() int {
	return c.EndHour - c.StartHour
}

// HourSlots lists the hours shown in the time column.
func (c GridConfig) HourSlots() []int {
	slots := make([]int, 0, c.TotalRows())
	for hour := c.StartHour; hour < c.EndHour; hour++ {
		slots = append(slots, hour)
	}
	return slots
}

// Placement is the row span assigned to a visible event. Rows count from 1 at StartHour and
// carry fractions for times that are not on the hour.
type Placement struct {
	Event         event.Event `json:"event"`
	RowStart      float64     `json:"rowStart"`
	RowEnd        float64     `json:"rowEnd"`
	Duration      float64     `json:"durationHours"`
	ShowTimeLabel bool        `json:"showTimeLabel"`
	TimeLabel     string      `json:"timeLabel"`
	Overflows     bool        `json:"overflows"`
}

// PlacementFailure records an event that could not be placed.
type PlacementFailure struct {
	Event  event.Event `json:"event"`
	Reason string      `json:"reason"`
	Err    error       `json:"-"`
}

// DayLayout is the positioned content of one calendar day.
type DayLayout struct {
	Date       time.Time          `json:"-"`
	Key        string             `json:"date"`
	Weekday    string             `json:"weekday"`
	DayOfMonth int                `json:"dayOfMonth"`
	IsToday    bool               `json:"isToday"`
	Events     []event.Event      `json:"events"`
	Placements []Placement        `json:"placements"`
	Excluded   []event.Event      `json:"excluded"`
	Failures   []PlacementFailure `json:"failures"`
}

// IsVisible reports whether the event starts inside the visible hours. Events starting
// outside the window are dropped whole rather than clipped.
func (c GridConfig) IsVisible(ev event.Event) (bool, error) {
	start, err := ParseTimeOfDay(ev.StartTime)
	if err != nil {
		return false, err
	}
	hour := start.Hour()
	return hour >= c.StartHour && hour < c.EndHour, nil
}

// PlaceEvent computes the row span of a visible event. RowEnd is passed through unclamped even
// when it runs past the last row; Overflows flags that case for the renderer.
func (c GridConfig) PlaceEvent(ev event.Event) (Placement, error) {
	start, err := ParseTimeOfDay(ev.StartTime)
	if err != nil {
		return Placement{}, err
	}
	end, err := ParseTimeOfDay(ev.EndTime)
	if err != nil {
		return Placement{}, err
	}
	if end <= start {
		return Placement{}, fmt.Errorf("event %s ends at or before its start", ev.ID)
	}
	origin := float64(c.StartHour)
	rowStart := float64(start) - origin + 1
	rowEnd := float64(end) - origin + 1
	duration := float64(end - start)
	return Placement{
		Event:         ev,
		RowStart:      rowStart,
		RowEnd:        rowEnd,
		Duration:      duration,
		ShowTimeLabel: duration > 1,
		TimeLabel:     start.String() + " – " + end.String(),
		Overflows:     rowEnd > float64(c.TotalRows()+1),
	}, nil
}

// LayoutDay places each event independently. A failure on one event never stops its siblings.
// Overlapping events keep their own spans and share grid cells.
func (c GridConfig) LayoutDay(date time.Time, events []event.Event) DayLayout {
	layout := DayLayout{
		Date:       date,
		Key:        DateKey(date),
		Weekday:    date.Format("Mon"),
		DayOfMonth: date.Day(),
		Events:     events,
		Placements: []Placement{},
		Excluded:   []event.Event{},
		Failures:   []PlacementFailure{},
	}
	if layout.Events == nil {
		layout.Events = []event.Event{}
	}
	for _, ev := range events {
		visible, err := c.IsVisible(ev)
		if err != nil {
			layout.Failures = append(layout.Failures, PlacementFailure{Event: ev, Reason: err.Error(), Err: err})
			continue
		}
		if !visible {
			layout.Excluded = append(layout.Excluded, ev)
			continue
		}
		placement, err := c.PlaceEvent(ev)
		if err != nil {
			layout.Failures = append(layout.Failures, PlacementFailure{Event: ev, Reason: err.Error(), Err: err})
			continue
		}
		layout.Placements = append(layout.Placements, placement)
	}
	return layout
}
