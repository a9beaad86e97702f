package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/yanqian/unievents/internal/domain/event"
)

// Config holds the calendar grid and clock settings.
type Config struct {
	Grid     GridConfig
	Location *time.Location
}

// EventSource is the data contract the calendar consumes. Results are grouped by event date.
type EventSource interface {
	ListInRange(ctx context.Context, start, endExclusive time.Time) (map[string][]event.Event, error)
}

// WeekRequest selects the week to render. An empty Date means today.
type WeekRequest struct {
	Date string `form:"date" json:"date"`
}

// WeekView is the positioned week handed to the rendering layer. Previous and Next are reference
// dates shifted by a week; PreviousWindow and NextWindow are the Window tags they resolve to.
type WeekView struct {
	Window         string      `json:"window"`
	Reference      string      `json:"reference"`
	Header         string      `json:"header"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDateExclusive"`
	Previous       string      `json:"previous"`
	Next           string      `json:"next"`
	PreviousWindow string      `json:"previousWindow"`
	NextWindow     string      `json:"nextWindow"`
	StartHour      int         `json:"startHour"`
	EndHour        int         `json:"endHour"`
	TotalRows      int         `json:"totalRows"`
	HourSlots      []HourSlot  `json:"hourSlots"`
	Days           []DayLayout `json:"days"`
	EventCount     int         `json:"eventCount"`
	LoadFailed     bool        `json:"loadFailed"`
}

// HourSlot is one labelled row of the time column.
type HourSlot struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
	Row   int    `json:"row"`
}

// WindowFetchError wraps a data source failure for one window.
type WindowFetchError struct {
	Window string
	Err    error
}

func (e *WindowFetchError) Error() string {
	return fmt.Sprintf("fetch events for week %s: %v", e.Window, e.Err)
}

func (e *WindowFetchError) Unwrap() error {
	return e.Err
}
