package event

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/unievents/pkg/errors"
)

// Service exposes event reads and authorized writes.
type Service interface {
	ListInRange(ctx context.Context, start, endExclusive time.Time) (map[string][]Event, error)
	ListByClub(ctx context.Context, clubName string) ([]Event, error)
	Get(ctx context.Context, id string) (Event, error)
	Detail(ctx context.Context, id string, viewer *Actor) (Detail, error)
	Create(ctx context.Context, actor Actor, req CreateRequest) (CreateResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateRequest) (Event, error)
}

type service struct {
	cfg    Config
	repo   Repository
	cache  RangeCache
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// NewService constructs the event service. cache may be nil.
func NewService(cfg Config, repo Repository, cache RangeCache, logger *slog.Logger) Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		logger: logger.With("component", "event.service"),
		now:    time.Now,
		newID:  func() string { return "evt-" + uuid.NewString() },
	}
}

func (s *service) ListInRange(ctx context.Context, start, endExclusive time.Time) (map[string][]Event, error) {
	from := start.Format(dateLayout)
	to := endExclusive.Format(dateLayout)
	if to <= from {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "range end must be after start", nil)
	}
	cache := s.cache
	var version int64
	if cache != nil {
		v, err := cache.Version(ctx)
		if err != nil {
			s.logger.Warn("range cache version read failed", "error", err)
			cache = nil
		}
		version = v
	}
	if cache != nil {
		cached, ok, err := cache.Get(ctx, version, from, to)
		if err != nil {
			s.logger.Warn("range cache read failed", "from", from, "to", to, "error", err)
		} else if ok {
			return cached, nil
		}
	}
	events, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Wrap("event_error", "failed to list events", err)
	}
	grouped := make(map[string][]Event)
	for _, ev := range events {
		if ev.Date < from || ev.Date >= to {
			continue
		}
		grouped[ev.Date] = append(grouped[ev.Date], ev)
	}
	if cache != nil {
		if err := cache.Save(ctx, version, from, to, grouped, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("range cache write failed", "from", from, "to", to, "error", err)
		}
	}
	return grouped, nil
}

func (s *service) ListByClub(ctx context.Context, clubName string) ([]Event, error) {
	events, err := s.repo.ListByClub(ctx, clubName)
	if err != nil {
		return nil, apperrors.Wrap("event_error", "failed to list club events", err)
	}
	return events, nil
}

func (s *service) Get(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, apperrors.Wrap(apperrors.CodeInvalidInput, "event id cannot be empty", nil)
	}
	ev, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Event{}, apperrors.Wrap("event_error", "failed to load event", err)
	}
	if !found {
		return Event{}, apperrors.Wrap(apperrors.CodeNotFound, "event not found", nil)
	}
	return ev, nil
}

func (s *service) Detail(ctx context.Context, id string, viewer *Actor) (Detail, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	past := s.isPast(ev)
	canEdit := false
	if viewer != nil {
		canEdit = owns(*viewer, ev) && !past
	}
	return Detail{Event: ev, CanEdit: canEdit, IsPast: past}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateRequest) (CreateResponse, error) {
	if strings.TrimSpace(actor.ClubSlug) == "" || strings.TrimSpace(actor.ClubName) == "" {
		return CreateResponse{}, apperrors.Wrap(apperrors.CodePermissionDenied, "user club information is missing", nil)
	}
	ev := Event{
		ID:          s.newID(),
		Title:       strings.TrimSpace(req.Title),
		ClubName:    actor.ClubName,
		ClubSlug:    actor.ClubSlug,
		Date:        strings.TrimSpace(req.Date),
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
	}
	if err := validate(ev); err != nil {
		return CreateResponse{}, err
	}
	created, err := s.repo.Create(ctx, ev)
	if err != nil {
		return CreateResponse{}, apperrors.Wrap("event_error", "failed to create event", err)
	}
	s.invalidate(ctx)
	s.logger.Info("event created", "event_id", created.ID, "club", created.ClubSlug, "date", created.Date)
	return CreateResponse{ID: created.ID}, nil
}

func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateRequest) (Event, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if !owns(actor, existing) {
		return Event{}, apperrors.Wrap(apperrors.CodePermissionDenied, "you do not have permission to edit this event", nil)
	}
	if s.isPast(existing) {
		return Event{}, apperrors.Wrap(apperrors.CodePermissionDenied, "past events cannot be edited", nil)
	}
	updated := Event{
		ID:          existing.ID,
		Title:       strings.TrimSpace(req.Title),
		ClubName:    existing.ClubName,
		ClubSlug:    existing.ClubSlug,
		Date:        strings.TrimSpace(req.Date),
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
	}
	if err := validate(updated); err != nil {
		return Event{}, err
	}
	saved, found, err := s.repo.Update(ctx, updated)
	if err != nil {
		return Event{}, apperrors.Wrap("event_error", "failed to update event", err)
	}
	if !found {
		return Event{}, apperrors.Wrap(apperrors.CodeNotFound, "event not found", nil)
	}
	s.invalidate(ctx)
	s.logger.Info("event updated", "event_id", saved.ID, "user_id", actor.UserID)
	return saved, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("range cache invalidation failed", "error", err)
	}
}

// isPast compares calendar dates in the configured zone; an event today is not past.
func (s *service) isPast(ev Event) bool {
	today := s.now().In(s.cfg.Location).Format(dateLayout)
	return ev.Date < today
}

func owns(actor Actor, ev Event) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ClubSlug != "" && actor.ClubSlug == ev.ClubSlug
}

func validate(ev Event) error {
	if ev.Title == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "title cannot be empty", nil)
	}
	if strings.EqualFold(ev.Title, reservedTitle) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "invalid event title, please try another", nil)
	}
	if ev.Location == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "location cannot be empty", nil)
	}
	if ev.Description == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "description cannot be empty", nil)
	}
	if _, err := time.Parse(dateLayout, ev.Date); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	start, err := time.Parse(timeLayout, ev.StartTime)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "start time must be formatted as HH:MM", err)
	}
	end, err := time.Parse(timeLayout, ev.EndTime)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "end time must be formatted as HH:MM", err)
	}
	if !start.Before(end) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "end time must be after start time", nil)
	}
	return nil
}
