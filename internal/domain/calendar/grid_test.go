package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/unievents/internal/domain/event"
)

var defaultGrid = GridConfig{StartHour: 9, EndHour: 19}

func newEvent(id, start, end string) event.Event {
	return event.Event{ID: id, Title: id, Date: "2025-10-27", StartTime: start, EndTime: end}
}

func TestGridConfigValidate(t *testing.T) {
	require.NoError(t, defaultGrid.Validate())
	require.NoError(t, GridConfig{StartHour: 1, EndHour: 24}.Validate())
	require.Error(t, GridConfig{StartHour: 0, EndHour: 10}.Validate())
	require.Error(t, GridConfig{StartHour: 10, EndHour: 10}.Validate())
	require.Error(t, GridConfig{StartHour: 12, EndHour: 8}.Validate())
	require.Error(t, GridConfig{StartHour: 9, EndHour: 25}.Validate())
}

func TestGridRowsAndSlots(t *testing.T) {
	require.Equal(t, 10, defaultGrid.TotalRows())
	require.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18}, defaultGrid.HourSlots())
}

func TestPlaceEvent(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		rowStart  float64
		rowEnd    float64
		duration  float64
		showLabel bool
		overflows bool
	}{
		{name: "one hour", start: "10:00", end: "11:00", rowStart: 2, rowEnd: 3, duration: 1},
		{name: "two hours", start: "14:00", end: "16:00", rowStart: 6, rowEnd: 8, duration: 2, showLabel: true},
		{name: "first row", start: "09:00", end: "10:00", rowStart: 1, rowEnd: 2, duration: 1},
		{name: "half hour offset", start: "10:30", end: "12:00", rowStart: 2.5, rowEnd: 4, duration: 1.5, showLabel: true},
		{name: "ends on grid edge", start: "18:00", end: "19:00", rowStart: 10, rowEnd: 11, duration: 1},
		{name: "runs past grid", start: "18:00", end: "21:00", rowStart: 10, rowEnd: 13, duration: 3, showLabel: true, overflows: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := defaultGrid.PlaceEvent(newEvent("evt", tt.start, tt.end))
			require.NoError(t, err)
			require.InDelta(t, tt.rowStart, p.RowStart, 1e-9)
			require.InDelta(t, tt.rowEnd, p.RowEnd, 1e-9)
			require.InDelta(t, tt.duration, p.Duration, 1e-9)
			require.Equal(t, tt.showLabel, p.ShowTimeLabel)
			require.Equal(t, tt.overflows, p.Overflows)
			require.Greater(t, p.RowEnd, p.RowStart)
			require.Equal(t, tt.start+" – "+tt.end, p.TimeLabel)
		})
	}
}

func TestPlaceEventMalformed(t *testing.T) {
	_, err := defaultGrid.PlaceEvent(newEvent("evt", "bad", "11:00"))
	var malformed *MalformedTimeError
	require.True(t, errors.As(err, &malformed))

	_, err = defaultGrid.PlaceEvent(newEvent("evt", "10:00", "later"))
	require.True(t, errors.As(err, &malformed))

	_, err = defaultGrid.PlaceEvent(newEvent("evt", "11:00", "10:00"))
	require.Error(t, err)
}

func TestIsVisible(t *testing.T) {
	tests := []struct {
		start   string
		visible bool
	}{
		{"08:00", false},
		{"08:59", false},
		{"09:00", true},
		{"18:59", true},
		{"19:00", false},
		{"20:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := defaultGrid.IsVisible(newEvent("evt", tt.start, "23:00"))
			require.NoError(t, err)
			require.Equal(t, tt.visible, got)
		})
	}
}

func TestLayoutDayIsolatesFailures(t *testing.T) {
	day := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	events := []event.Event{
		newEvent("early", "08:00", "09:00"),
		newEvent("ok", "10:00", "11:00"),
		newEvent("broken", "bad", "11:00"),
		newEvent("late", "20:00", "22:00"),
		newEvent("long", "14:00", "16:00"),
	}

	layout := defaultGrid.LayoutDay(day, events)

	require.Equal(t, "2025-10-27", layout.Key)
	require.Equal(t, "Mon", layout.Weekday)
	require.Equal(t, 27, layout.DayOfMonth)
	require.Len(t, layout.Events, 5)

	require.Len(t, layout.Placements, 2)
	require.Equal(t, "ok", layout.Placements[0].Event.ID)
	require.InDelta(t, 2, layout.Placements[0].RowStart, 1e-9)
	require.InDelta(t, 3, layout.Placements[0].RowEnd, 1e-9)
	require.Equal(t, "long", layout.Placements[1].Event.ID)

	require.Len(t, layout.Excluded, 2)
	require.Equal(t, "early", layout.Excluded[0].ID)
	require.Equal(t, "late", layout.Excluded[1].ID)

	require.Len(t, layout.Failures, 1)
	require.Equal(t, "broken", layout.Failures[0].Event.ID)
	var malformed *MalformedTimeError
	require.True(t, errors.As(layout.Failures[0].Err, &malformed))
}

func TestLayoutDayStacksOverlaps(t *testing.T) {
	day := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	layout := defaultGrid.LayoutDay(day, []event.Event{
		newEvent("a", "10:00", "12:00"),
		newEvent("b", "11:00", "12:00"),
	})
	require.Len(t, layout.Placements, 2)
	require.InDelta(t, 2, layout.Placements[0].RowStart, 1e-9)
	require.InDelta(t, 3, layout.Placements[1].RowStart, 1e-9)
	require.InDelta(t, 4, layout.Placements[0].RowEnd, 1e-9)
	require.InDelta(t, 4, layout.Placements[1].RowEnd, 1e-9)
}

func TestLayoutDayEmpty(t *testing.T) {
	layout := defaultGrid.LayoutDay(time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), nil)
	require.Equal(t, "Sun", layout.Weekday)
	require.NotNil(t, layout.Events)
	require.Empty(t, layout.Events)
	require.Empty(t, layout.Placements)
	require.Empty(t, layout.Excluded)
	require.Empty(t, layout.Failures)
}
