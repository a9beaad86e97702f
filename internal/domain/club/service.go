package club

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/unievents/internal/domain/event"
	apperrors "github.com/yanqian/unievents/pkg/errors"
)

// Service exposes the club directory, profiles and feeds.
type Service interface {
	List(ctx context.Context) ([]Listing, error)
	Profile(ctx context.Context, slug string, viewer *event.Actor) (Profile, error)
	CalendarFeed(ctx context.Context, slug string) ([]byte, error)
	UploadLogo(ctx context.Context, actor event.Actor, slug string, upload LogoUpload) (UploadResponse, error)
	Logo(ctx context.Context, slug string) (LogoObject, error)
}

type service struct {
	cfg    Config
	repo   Repository
	events EventLister
	logos  LogoStorage
	logger *slog.Logger
	now    func() time.Time
}

const (
	dateLayout      = "2006-01-02"
	dateTimeLayout  = "2006-01-02 15:04"
	defaultMaxLogo  = 2 << 20
	defaultProducer = "-//UniEvents//Club Calendar//EN"
	listConcurrency = 4
)

var allowedLogoTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// NewService constructs the club service.
func NewService(cfg Config, repo Repository, events EventLister, logos LogoStorage, logger *slog.Logger) Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxLogoBytes <= 0 {
		cfg.MaxLogoBytes = defaultMaxLogo
	}
	if cfg.ProductID == "" {
		cfg.ProductID = defaultProducer
	}
	if cfg.LogoPath == nil {
		cfg.LogoPath = func(slug string) string { return "/api/v1/clubs/" + slug + "/logo" }
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		events: events,
		logos:  logos,
		logger: logger.With("component", "club.service"),
		now:    time.Now,
	}
}

func (s *service) List(ctx context.Context) ([]Listing, error) {
	clubs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("club_error", "failed to list clubs", err)
	}
	listings := make([]Listing, len(clubs))
	today := s.now().In(s.cfg.Location).Format(dateLayout)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, c := range clubs {
		g.Go(func() error {
			events, err := s.events.ListByClub(gctx, c.Name)
			if err != nil {
				return err
			}
			upcoming := 0
			for _, ev := range events {
				if ev.Date >= today {
					upcoming++
				}
			}
			listings[i] = Listing{Club: c, UpcomingEvents: upcoming}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap("club_error", "failed to count club events", err)
	}
	return listings, nil
}

func (s *service) Profile(ctx context.Context, slug string, viewer *event.Actor) (Profile, error) {
	club, err := s.lookup(ctx, slug)
	if err != nil {
		return Profile{}, err
	}
	events, err := s.events.ListByClub(ctx, club.Name)
	if err != nil {
		return Profile{}, apperrors.Wrap("club_error", "failed to load club events", err)
	}

	today := s.now().In(s.cfg.Location).Format(dateLayout)
	profile := Profile{Club: club, Upcoming: []event.Event{}, Past: []event.Event{}}
	for _, ev := range events {
		if ev.Date >= today {
			profile.Upcoming = append(profile.Upcoming, ev)
		} else {
			profile.Past = append(profile.Past, ev)
		}
	}
	sort.SliceStable(profile.Upcoming, func(i, j int) bool {
		return sortKey(profile.Upcoming[i]) < sortKey(profile.Upcoming[j])
	})
	sort.SliceStable(profile.Past, func(i, j int) bool {
		return sortKey(profile.Past[i]) > sortKey(profile.Past[j])
	})
	if viewer != nil {
		profile.IsOwnClub = viewer.ClubSlug == club.Slug
	}
	return profile, nil
}

func (s *service) CalendarFeed(ctx context.Context, slug string) ([]byte, error) {
	club, err := s.lookup(ctx, slug)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByClub(ctx, club.Name)
	if err != nil {
		return nil, apperrors.Wrap("club_error", "failed to load club events", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(s.cfg.ProductID)
	cal.SetXWRCalName(club.Name)
	cal.SetXWRTimezone(s.cfg.Location.String())
	stamp := s.now().UTC()
	for _, ev := range events {
		if ev.ClubName != club.Name {
			continue
		}
		start, err := time.ParseInLocation(dateTimeLayout, ev.Date+" "+ev.StartTime, s.cfg.Location)
		if err != nil {
			s.logger.Warn("feed skipped event, malformed start", "event_id", ev.ID, "error", err)
			continue
		}
		end, err := time.ParseInLocation(dateTimeLayout, ev.Date+" "+ev.EndTime, s.cfg.Location)
		if err != nil || !end.After(start) {
			s.logger.Warn("feed skipped event, malformed end", "event_id", ev.ID, "error", err)
			continue
		}
		vevent := cal.AddEvent(ev.ID + "@unievents")
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(start)
		vevent.SetEndAt(end)
		vevent.SetSummary(ev.Title)
		vevent.SetLocation(ev.Location)
		vevent.SetDescription(ev.Description)
		if club.ContactEmail != "" {
			vevent.SetOrganizer("mailto:"+club.ContactEmail, ical.WithCN(club.Name))
		}
	}
	return []byte(cal.Serialize()), nil
}

func (s *service) UploadLogo(ctx context.Context, actor event.Actor, slug string, upload LogoUpload) (UploadResponse, error) {
	club, err := s.lookup(ctx, slug)
	if err != nil {
		return UploadResponse{}, err
	}
	if !actor.IsAdmin() && actor.ClubSlug != club.Slug {
		return UploadResponse{}, apperrors.Wrap(apperrors.CodePermissionDenied, "only the club representative can change its logo", nil)
	}
	if s.logos == nil {
		return UploadResponse{}, apperrors.Wrap("storage_not_configured", "logo storage is not configured", nil)
	}
	size := int64(len(upload.Data))
	if size == 0 {
		return UploadResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "logo file is empty", nil)
	}
	if size > s.cfg.MaxLogoBytes {
		return UploadResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "logo file is too large", nil)
	}
	contentType := http.DetectContentType(upload.Data)
	if _, ok := allowedLogoTypes[contentType]; !ok {
		return UploadResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "logo must be a png, jpeg, webp or gif image", nil)
	}

	stored, err := s.logos.Put(ctx, logoKey(club.Slug), upload.Data, contentType)
	if err != nil {
		return UploadResponse{}, apperrors.Wrap("storage_error", "failed to store logo", err)
	}
	updated, found, err := s.repo.UpdateLogo(ctx, club.Slug, s.cfg.LogoPath(club.Slug))
	if err != nil {
		return UploadResponse{}, apperrors.Wrap("club_error", "failed to update club logo", err)
	}
	if !found {
		return UploadResponse{}, apperrors.Wrap(apperrors.CodeNotFound, "club not found", nil)
	}
	s.logger.Info("club logo updated", "club", club.Slug, "size", stored.Size, "content_type", contentType, "user_id", actor.UserID)
	return UploadResponse{Club: updated, Logo: stored}, nil
}

func (s *service) Logo(ctx context.Context, slug string) (LogoObject, error) {
	club, err := s.lookup(ctx, slug)
	if err != nil {
		return LogoObject{}, err
	}
	if s.logos == nil {
		return LogoObject{}, apperrors.Wrap(apperrors.CodeNotFound, "logo not found", nil)
	}
	obj, found, err := s.logos.Get(ctx, logoKey(club.Slug))
	if err != nil {
		return LogoObject{}, apperrors.Wrap("storage_error", "failed to load logo", err)
	}
	if !found {
		return LogoObject{}, apperrors.Wrap(apperrors.CodeNotFound, "logo not found", nil)
	}
	return obj, nil
}

func (s *service) lookup(ctx context.Context, slug string) (Club, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return Club{}, apperrors.Wrap(apperrors.CodeInvalidInput, "club slug cannot be empty", nil)
	}
	club, found, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return Club{}, apperrors.Wrap("club_error", "failed to load club", err)
	}
	if !found {
		return Club{}, apperrors.Wrap(apperrors.CodeNotFound, "club not found", nil)
	}
	return club, nil
}

func sortKey(ev event.Event) string {
	return ev.Date + " " + ev.StartTime
}

func logoKey(slug string) string {
	return "clubs/" + slug + "/logo"
}
