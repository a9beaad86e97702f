package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/domain/calendar"
	"github.com/yanqian/unievents/internal/domain/club"
	"github.com/yanqian/unievents/internal/domain/event"
	"github.com/yanqian/unievents/internal/infra/config"
	apperrors "github.com/yanqian/unievents/pkg/errors"
)

const (
	clubToken  = "club-token"
	adminToken = "admin-token"
)

func TestRouter_Health(t *testing.T) {
	rec := performRequest(newRouterUnderTest(t, &stubs{}), http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRouter_WeekBindsReferenceDate(t *testing.T) {
	deps := &stubs{
		calendar: &stubCalendar{weekFn: func(ctx context.Context, req calendar.WeekRequest) (calendar.WeekView, error) {
			require.Equal(t, "2025-10-30", req.Date)
			return calendar.WeekView{Window: "2025-10-27", Header: "October 27 – November 2, 2025", EventCount: 4}, nil
		}},
	}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodGet, "/api/v1/calendar/week?date=2025-10-30", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got calendar.WeekView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "2025-10-27", got.Window)
	require.Equal(t, 4, got.EventCount)
}

func TestRouter_WeekInvalidDate(t *testing.T) {
	deps := &stubs{
		calendar: &stubCalendar{weekFn: func(ctx context.Context, req calendar.WeekRequest) (calendar.WeekView, error) {
			return calendar.WeekView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be YYYY-MM-DD", nil)
		}},
	}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodGet, "/api/v1/calendar/week?date=tomorrow", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, apperrors.CodeInvalidInput, errBody["error"]["code"])
	require.Equal(t, "date must be YYYY-MM-DD", errBody["error"]["message"])
}

func TestRouter_EventDetailViewer(t *testing.T) {
	var viewers []*event.Actor
	deps := &stubs{
		events: &stubEvents{detailFn: func(ctx context.Context, id string, viewer *event.Actor) (event.Detail, error) {
			require.Equal(t, "evt-1", id)
			viewers = append(viewers, viewer)
			return event.Detail{Event: event.Event{ID: id}, CanEdit: viewer != nil}, nil
		}},
	}
	server := newRouterUnderTest(t, deps)

	rec := performRequest(server, http.MethodGet, "/api/v1/events/evt-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodGet, "/api/v1/events/evt-1", "", clubToken)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodGet, "/api/v1/events/evt-1", "", "garbage")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, viewers, 3)
	require.Nil(t, viewers[0])
	require.NotNil(t, viewers[1])
	require.Equal(t, "coding-club", viewers[1].ClubSlug)
	require.Equal(t, "Coding Club", viewers[1].ClubName)
	require.Nil(t, viewers[2])
}

func TestRouter_EventNotFound(t *testing.T) {
	deps := &stubs{
		events: &stubEvents{detailFn: func(ctx context.Context, id string, viewer *event.Actor) (event.Detail, error) {
			return event.Detail{}, apperrors.Wrap(apperrors.CodeNotFound, "event not found", nil)
		}},
	}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodGet, "/api/v1/events/missing", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apperrors.CodeNotFound, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_CreateEvent(t *testing.T) {
	deps := &stubs{
		events: &stubEvents{createFn: func(ctx context.Context, actor event.Actor, req event.CreateRequest) (event.CreateResponse, error) {
			require.Equal(t, "coding-club", actor.ClubSlug)
			require.Equal(t, int64(1), actor.UserID)
			require.Equal(t, "Hack Night", req.Title)
			return event.CreateResponse{ID: "evt-new"}, nil
		}},
	}
	server := newRouterUnderTest(t, deps)
	body := `{"title":"Hack Night","date":"2099-01-05","startTime":"18:00","endTime":"20:00"}`

	t.Run("requires auth", func(t *testing.T) {
		rec := performRequest(server, http.MethodPost, "/api/v1/events", body, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "unauthorized", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		rec := performRequest(server, http.MethodPost, "/api/v1/events", body, "expired")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, apperrors.CodeInvalidToken, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		rec := performRequest(server, http.MethodPost, "/api/v1/events", `{"title":1}`, clubToken)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	})

	t.Run("creates", func(t *testing.T) {
		rec := performRequest(server, http.MethodPost, "/api/v1/events", body, clubToken)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"newEventId":"evt-new"}`, rec.Body.String())
	})
}

func TestRouter_UpdateEventPermissionDenied(t *testing.T) {
	deps := &stubs{
		events: &stubEvents{updateFn: func(ctx context.Context, actor event.Actor, id string, req event.UpdateRequest) (event.Event, error) {
			require.Equal(t, "evt-2", id)
			return event.Event{}, apperrors.Wrap(apperrors.CodePermissionDenied, "past events are read-only", nil)
		}},
	}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodPut, "/api/v1/events/evt-2", `{"title":"x"}`, clubToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, apperrors.CodePermissionDenied, errBody["error"]["code"])
	require.Equal(t, "past events are read-only", errBody["error"]["message"])
}

func TestRouter_ClubDirectoryAndProfile(t *testing.T) {
	deps := &stubs{
		clubs: &stubClubs{
			listFn: func(ctx context.Context) ([]club.Listing, error) {
				return []club.Listing{{Club: club.Club{Name: "Coding Club", Slug: "coding-club"}, UpcomingEvents: 2}}, nil
			},
			profileFn: func(ctx context.Context, slug string, viewer *event.Actor) (club.Profile, error) {
				require.Equal(t, "coding-club", slug)
				return club.Profile{Club: club.Club{Slug: slug}, IsOwnClub: viewer != nil && viewer.ClubSlug == slug}, nil
			},
		},
	}
	server := newRouterUnderTest(t, deps)

	rec := performRequest(server, http.MethodGet, "/api/v1/clubs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var directory struct {
		Clubs []club.Listing `json:"clubs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &directory))
	require.Len(t, directory.Clubs, 1)
	require.Equal(t, 2, directory.Clubs[0].UpcomingEvents)

	rec = performRequest(server, http.MethodGet, "/api/v1/clubs/coding-club", "", clubToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile club.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.True(t, profile.IsOwnClub)
}

func TestRouter_ClubCalendarFeed(t *testing.T) {
	feed := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	deps := &stubs{
		clubs: &stubClubs{feedFn: func(ctx context.Context, slug string) ([]byte, error) {
			return []byte(feed), nil
		}},
	}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodGet, "/api/v1/clubs/coding-club/calendar.ics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "coding-club.ics")
	require.Equal(t, feed, rec.Body.String())
}

func TestRouter_GetLogo(t *testing.T) {
	deps := &stubs{
		clubs: &stubClubs{logoFn: func(ctx context.Context, slug string) (club.LogoObject, error) {
			return club.LogoObject{
				Body:        io.NopCloser(strings.NewReader("png-bytes")),
				ContentType: "image/png",
				Size:        int64(len("png-bytes")),
				ETag:        "abc",
			}, nil
		}},
	}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodGet, "/api/v1/clubs/coding-club/logo", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, `"abc"`, rec.Header().Get("ETag"))
	require.Equal(t, "png-bytes", rec.Body.String())
}

func TestRouter_UploadLogo(t *testing.T) {
	deps := &stubs{
		clubs: &stubClubs{uploadFn: func(ctx context.Context, actor event.Actor, slug string, upload club.LogoUpload) (club.UploadResponse, error) {
			require.Equal(t, "coding-club", actor.ClubSlug)
			require.Equal(t, "logo.png", upload.Filename)
			require.Equal(t, []byte("image-data"), upload.Data)
			return club.UploadResponse{Club: club.Club{Slug: slug, LogoURL: "/api/v1/clubs/coding-club/logo"}}, nil
		}},
	}
	server := newRouterUnderTest(t, deps)

	body, contentType := multipartBody(t, "file", "logo.png", []byte("image-data"))
	req := httptest.NewRequest(http.MethodPut, "/api/v1/clubs/coding-club/logo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+clubToken)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got club.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "/api/v1/clubs/coding-club/logo", got.Club.LogoURL)

	body, contentType = multipartBody(t, "other", "logo.png", []byte("image-data"))
	req = httptest.NewRequest(http.MethodPut, "/api/v1/clubs/coding-club/logo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+clubToken)
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UploadLogoWithoutStorage(t *testing.T) {
	deps := &stubs{
		clubs: &stubClubs{uploadFn: func(ctx context.Context, actor event.Actor, slug string, upload club.LogoUpload) (club.UploadResponse, error) {
			return club.UploadResponse{}, apperrors.Wrap("storage_not_configured", "logo storage is not configured", nil)
		}},
	}

	body, contentType := multipartBody(t, "file", "logo.png", []byte("image-data"))
	req := httptest.NewRequest(http.MethodPut, "/api/v1/clubs/coding-club/logo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, deps).Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "storage_not_configured", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_LoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad credentials", apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil), http.StatusUnauthorized, apperrors.CodeInvalidCredentials},
		{"bad input", apperrors.Wrap(apperrors.CodeInvalidInput, "email is required", nil), http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"storage failure", apperrors.Wrap("user_lookup_failed", "failed to load user", io.ErrUnexpectedEOF), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deps := &stubs{auth: &stubAuth{loginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
				return auth.LoginResponse{}, tc.err
			}}}
			rec := performRequest(newRouterUnderTest(t, deps), http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"x"}`, "")
			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.wantCode, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
		})
	}
}

func TestRouter_LoginSuccessAndMe(t *testing.T) {
	deps := &stubs{auth: &stubAuth{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
			require.Equal(t, "club@unievents.com", req.Email)
			return auth.LoginResponse{Token: clubToken, RefreshToken: "refresh"}, nil
		},
		profileFn: func(ctx context.Context, userID int64) (auth.UserView, error) {
			require.Equal(t, int64(1), userID)
			return auth.UserView{ID: userID, Email: "club@unievents.com"}, nil
		},
	}}
	server := newRouterUnderTest(t, deps)

	rec := performRequest(server, http.MethodPost, "/api/v1/auth/login", `{"email":"club@unievents.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, clubToken, login.Token)

	rec = performRequest(server, http.MethodGet, "/api/v1/auth/me", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "club@unievents.com")
}

func TestRouter_Logout(t *testing.T) {
	var gotRefresh string
	deps := &stubs{auth: &stubAuth{logoutFn: func(ctx context.Context, claims auth.Claims, refreshToken string) error {
		require.Equal(t, int64(1), claims.UserID)
		gotRefresh = refreshToken
		return nil
	}}}

	rec := performRequest(newRouterUnderTest(t, deps), http.MethodPost, "/api/v1/auth/logout", `{"refreshToken":"refresh"}`, clubToken)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "refresh", gotRefresh)
}

func TestRouter_RetriesTransientReads(t *testing.T) {
	calls := 0
	deps := &stubs{
		events: &stubEvents{detailFn: func(ctx context.Context, id string, viewer *event.Actor) (event.Detail, error) {
			calls++
			if calls == 1 {
				return event.Detail{}, apperrors.Wrap("event_error", "failed to load event", io.ErrUnexpectedEOF)
			}
			return event.Detail{Event: event.Event{ID: id}}, nil
		}},
	}
	cfg := testConfig()
	cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: 3}

	rec := performRequest(newRouterWithConfig(t, deps, cfg), http.MethodGet, "/api/v1/events/evt-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, calls)
}

func TestRouter_RetrySkipsExcludedRoutes(t *testing.T) {
	calls := 0
	deps := &stubs{
		clubs: &stubClubs{logoFn: func(ctx context.Context, slug string) (club.LogoObject, error) {
			calls++
			return club.LogoObject{}, apperrors.Wrap("storage_error", "failed to load logo", io.ErrUnexpectedEOF)
		}},
	}
	cfg := testConfig()
	cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: 3, Exclude: []string{"/api/v1/clubs/:slug/logo"}}

	rec := performRequest(newRouterWithConfig(t, deps, cfg), http.MethodGet, "/api/v1/clubs/coding-club/logo", "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, calls)
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"http://localhost:3000"}
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/events/evt-1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	newRouterWithConfig(t, &stubs{}, cfg).Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := newRouterWithConfig(t, &stubs{}, cfg)

	rec := performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestIPRateLimiterRefills(t *testing.T) {
	now := time.Date(2025, 10, 27, 9, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 1})
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))

	now = now.Add(time.Second)
	require.True(t, limiter.allow("10.0.0.1"))
}

func TestExcludedMatchesRoutePatterns(t *testing.T) {
	patterns := [][]string{splitPath("/api/v1/clubs/:slug/logo")}
	require.True(t, excluded(patterns, "/api/v1/clubs/coding-club/logo"))
	require.False(t, excluded(patterns, "/api/v1/clubs/coding-club"))
	require.False(t, excluded(patterns, "/api/v1/clubs/coding-club/calendar.ics"))
}

func performRequest(server *http.Server, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func newRouterUnderTest(t *testing.T, deps *stubs) *http.Server {
	t.Helper()
	return newRouterWithConfig(t, deps, testConfig())
}

func newRouterWithConfig(t *testing.T, deps *stubs, cfg *config.Config) *http.Server {
	t.Helper()
	if deps.calendar == nil {
		deps.calendar = &stubCalendar{}
	}
	if deps.events == nil {
		deps.events = &stubEvents{}
	}
	if deps.clubs == nil {
		deps.clubs = &stubClubs{}
	}
	if deps.auth == nil {
		deps.auth = &stubAuth{}
	}
	handler := NewHandler(deps.calendar, deps.events, deps.clubs, deps.auth, newTestLogger())
	return NewRouter(cfg, handler, deps.auth)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

type stubs struct {
	calendar *stubCalendar
	events   *stubEvents
	clubs    *stubClubs
	auth     *stubAuth
}

type stubCalendar struct {
	weekFn func(ctx context.Context, req calendar.WeekRequest) (calendar.WeekView, error)
}

func (s *stubCalendar) Week(ctx context.Context, req calendar.WeekRequest) (calendar.WeekView, error) {
	if s.weekFn != nil {
		return s.weekFn(ctx, req)
	}
	return calendar.WeekView{}, nil
}

type stubEvents struct {
	detailFn func(ctx context.Context, id string, viewer *event.Actor) (event.Detail, error)
	createFn func(ctx context.Context, actor event.Actor, req event.CreateRequest) (event.CreateResponse, error)
	updateFn func(ctx context.Context, actor event.Actor, id string, req event.UpdateRequest) (event.Event, error)
}

func (s *stubEvents) ListInRange(ctx context.Context, start, endExclusive time.Time) (map[string][]event.Event, error) {
	return map[string][]event.Event{}, nil
}

func (s *stubEvents) ListByClub(ctx context.Context, clubName string) ([]event.Event, error) {
	return nil, nil
}

func (s *stubEvents) Get(ctx context.Context, id string) (event.Event, error) {
	return event.Event{ID: id}, nil
}

func (s *stubEvents) Detail(ctx context.Context, id string, viewer *event.Actor) (event.Detail, error) {
	if s.detailFn != nil {
		return s.detailFn(ctx, id, viewer)
	}
	return event.Detail{Event: event.Event{ID: id}}, nil
}

func (s *stubEvents) Create(ctx context.Context, actor event.Actor, req event.CreateRequest) (event.CreateResponse, error) {
	if s.createFn != nil {
		return s.createFn(ctx, actor, req)
	}
	return event.CreateResponse{}, nil
}

func (s *stubEvents) Update(ctx context.Context, actor event.Actor, id string, req event.UpdateRequest) (event.Event, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, actor, id, req)
	}
	return event.Event{ID: id}, nil
}

type stubClubs struct {
	listFn    func(ctx context.Context) ([]club.Listing, error)
	profileFn func(ctx context.Context, slug string, viewer *event.Actor) (club.Profile, error)
	feedFn    func(ctx context.Context, slug string) ([]byte, error)
	uploadFn  func(ctx context.Context, actor event.Actor, slug string, upload club.LogoUpload) (club.UploadResponse, error)
	logoFn    func(ctx context.Context, slug string) (club.LogoObject, error)
}

func (s *stubClubs) List(ctx context.Context) ([]club.Listing, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubClubs) Profile(ctx context.Context, slug string, viewer *event.Actor) (club.Profile, error) {
	if s.profileFn != nil {
		return s.profileFn(ctx, slug, viewer)
	}
	return club.Profile{}, nil
}

func (s *stubClubs) CalendarFeed(ctx context.Context, slug string) ([]byte, error) {
	if s.feedFn != nil {
		return s.feedFn(ctx, slug)
	}
	return nil, nil
}

func (s *stubClubs) UploadLogo(ctx context.Context, actor event.Actor, slug string, upload club.LogoUpload) (club.UploadResponse, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, actor, slug, upload)
	}
	return club.UploadResponse{}, nil
}

func (s *stubClubs) Logo(ctx context.Context, slug string) (club.LogoObject, error) {
	if s.logoFn != nil {
		return s.logoFn(ctx, slug)
	}
	return club.LogoObject{}, apperrors.Wrap(apperrors.CodeNotFound, "logo not found", nil)
}

type stubAuth struct {
	loginFn   func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	profileFn func(ctx context.Context, userID int64) (auth.UserView, error)
	logoutFn  func(ctx context.Context, claims auth.Claims, refreshToken string) error
}

func (s *stubAuth) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return auth.LoginResponse{}, nil
}

// ValidateToken recognises the two fixed test tokens.
func (s *stubAuth) ValidateToken(ctx context.Context, token string) (auth.Claims, error) {
	switch token {
	case clubToken:
		return auth.Claims{UserID: 1, Email: "club@unievents.com", Role: auth.RoleClubMember, ClubName: "Coding Club", ClubSlug: "coding-club"}, nil
	case adminToken:
		return auth.Claims{UserID: 2, Email: "admin@unievents.com", Role: auth.RoleAdmin, ClubName: "University Admin"}, nil
	default:
		return auth.Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "invalid token", nil)
	}
}

func (s *stubAuth) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidToken, "invalid token", nil)
}

func (s *stubAuth) Profile(ctx context.Context, userID int64) (auth.UserView, error) {
	if s.profileFn != nil {
		return s.profileFn(ctx, userID)
	}
	return auth.UserView{ID: userID}, nil
}

func (s *stubAuth) Logout(ctx context.Context, claims auth.Claims, refreshToken string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, claims, refreshToken)
	}
	return nil
}
