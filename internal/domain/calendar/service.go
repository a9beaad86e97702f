package calendar

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/unievents/pkg/errors"
)

// Service builds positioned week views.
type Service interface {
	Week(ctx context.Context, req WeekRequest) (WeekView, error)
}

type service struct {
	cfg    Config
	source EventSource
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the calendar core to its event source.
func NewService(cfg Config, source EventSource, logger *slog.Logger) Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &service{
		cfg:    cfg,
		source: source,
		logger: logger.With("component", "calendar.service"),
		now:    time.Now,
	}
}

func (s *service) Week(ctx context.Context, req WeekRequest) (WeekView, error) {
	ref, err := s.resolveReference(req.Date)
	if err != nil {
		return WeekView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	window := NewWindow(ref)
	view := s.skeleton(ref, window)

	grouped, err := s.source.ListInRange(ctx, window.Start, window.End())
	if err != nil {
		fetchErr := &WindowFetchError{Window: window.Key(), Err: err}
		s.logger.Error("week fetch failed, rendering empty week", "window", window.Key(), "error", fetchErr)
		view.LoadFailed = true
		view.Days = s.layoutWeek(window, nil)
		return view, nil
	}

	index := BuildIndex(window, grouped)
	view.Days = s.layoutWeek(window, index)
	view.EventCount = index.Count()

	failures := 0
	for _, day := range view.Days {
		for _, f := range day.Failures {
			failures++
			var malformed *MalformedTimeError
			if errors.As(f.Err, &malformed) {
				s.logger.Warn("event skipped, malformed time", "event_id", f.Event.ID, "value", malformed.Value)
			} else {
				s.logger.Warn("event skipped", "event_id", f.Event.ID, "reason", f.Reason)
			}
		}
	}
	s.logger.Debug("week rendered", "window", window.Key(), "events", view.EventCount, "failures", failures)
	return view, nil
}

func (s *service) resolveReference(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return s.now().In(s.cfg.Location), nil
	}
	return ParseDateKey(trimmed, s.cfg.Location)
}

func (s *service) skeleton(ref time.Time, window Window) WeekView {
	grid := s.cfg.Grid
	slots := make([]HourSlot, 0, grid.TotalRows())
	for i, hour := range grid.HourSlots() {
		slots = append(slots, HourSlot{Hour: hour, Label: HourSlotLabel(hour), Row: i + 1})
	}
	return WeekView{
		Window:         window.Key(),
		Reference:      DateKey(ref),
		Header:         window.Header(),
		StartDate:      DateKey(window.Start),
		EndDate:        DateKey(window.End()),
		Previous:       DateKey(PreviousWeek(ref)),
		Next:           DateKey(NextWeek(ref)),
		PreviousWindow: window.Previous().Key(),
		NextWindow:     window.Next().Key(),
		StartHour:      grid.StartHour,
		EndHour:        grid.EndHour,
		TotalRows:      grid.TotalRows(),
		HourSlots:      slots,
	}
}

func (s *service) layoutWeek(window Window, index WeekEventIndex) []DayLayout {
	today := DateKey(s.now().In(s.cfg.Location))
	days := make([]DayLayout, 0, DaysPerWeek)
	for _, day := range window.Days {
		layout := s.cfg.Grid.LayoutDay(day, index.Day(DateKey(day)))
		layout.IsToday = layout.Key == today
		days = append(days, layout)
	}
	return days
}
