package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/domain/calendar"
	"github.com/yanqian/unievents/internal/domain/club"
	"github.com/yanqian/unievents/internal/domain/event"
)

const maxLogoUploadBytes = 4 << 20

// Handler wires the HTTP transport to domain services.
type Handler struct {
	calendarSvc calendar.Service
	eventSvc    event.Service
	clubSvc     club.Service
	authSvc     auth.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(calendarSvc calendar.Service, eventSvc event.Service, clubSvc club.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		calendarSvc: calendarSvc,
		eventSvc:    eventSvc,
		clubSvc:     clubSvc,
		authSvc:     authSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Week renders the week containing the optional ?date= reference.
func (h *Handler) Week(c *gin.Context) {
	var req calendar.WeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	view, err := h.calendarSvc.Week(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetEvent returns an event and whether the caller may edit it.
func (h *Handler) GetEvent(c *gin.Context) {
	detail, err := h.eventSvc.Detail(c.Request.Context(), c.Param("id"), viewer(c))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing claims", nil))
		return
	}
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.eventSvc.Create(c.Request.Context(), actorFromClaims(claims), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing claims", nil))
		return
	}
	var req event.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	updated, err := h.eventSvc.Update(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": updated})
}

// ListClubs returns the club directory.
func (h *Handler) ListClubs(c *gin.Context) {
	clubs, err := h.clubSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (h *Handler) GetClub(c *gin.Context) {
	profile, err := h.clubSvc.Profile(c.Request.Context(), c.Param("slug"), viewer(c))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ClubCalendar serves the club's events as an iCalendar feed.
func (h *Handler) ClubCalendar(c *gin.Context) {
	slug := c.Param("slug")
	body, err := h.clubSvc.CalendarFeed(c.Request.Context(), slug)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Header("Content-Disposition", "inline; filename=\""+slug+".ics\"")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

func (h *Handler) GetLogo(c *gin.Context) {
	logo, err := h.clubSvc.Logo(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	defer logo.Body.Close()

	headers := map[string]string{"Cache-Control": "public, max-age=300"}
	if logo.ETag != "" {
		headers["ETag"] = strconv.Quote(logo.ETag)
	}
	c.DataFromReader(http.StatusOK, logo.Size, logo.ContentType, logo.Body, headers)
}

// UploadLogo accepts a multipart "file" and replaces the club logo.
func (h *Handler) UploadLogo(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing claims", nil))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return
	}
	if fileHeader.Size > maxLogoUploadBytes {
		abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "file_too_large", "logo file is too large", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unable to read file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogoUploadBytes))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unable to read file", err))
		return
	}

	resp, err := h.clubSvc.UploadLogo(c.Request.Context(), actorFromClaims(claims), c.Param("slug"), club.LogoUpload{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login exchanges credentials for tokens.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing claims", nil))
		return
	}
	profile, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// Logout revokes the presented access token and, when supplied, the refresh token.
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing claims", nil))
		return
	}
	var req auth.LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	}
	if err := h.authSvc.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
