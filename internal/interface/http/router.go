package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/infra/config"
)

const maxMultipartMemory = 8 << 20

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	requireAuth := authMiddleware(authSvc)
	optionalAuth := optionalAuthMiddleware(authSvc)

	api := router.Group("/api/v1")
	{
		api.GET("/calendar/week", handler.Week)

		events := api.Group("/events")
		events.GET("/:id", optionalAuth, handler.GetEvent)
		events.POST("", requireAuth, handler.CreateEvent)
		events.PUT("/:id", requireAuth, handler.UpdateEvent)

		clubs := api.Group("/clubs")
		clubs.GET("", handler.ListClubs)
		clubs.GET("/:slug", optionalAuth, handler.GetClub)
		clubs.GET("/:slug/calendar.ics", handler.ClubCalendar)
		clubs.GET("/:slug/logo", handler.GetLogo)
		clubs.PUT("/:slug/logo", requireAuth, handler.UploadLogo)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.GET("/me", requireAuth, handler.Me)
		authGroup.POST("/logout", requireAuth, handler.Logout)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
