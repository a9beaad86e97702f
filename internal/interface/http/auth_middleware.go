package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/unievents/internal/domain/auth"
	apperrors "github.com/yanqian/unievents/pkg/errors"
)

func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		claims, err := svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			status := http.StatusForbidden
			code := apperrors.CodeInvalidToken
			if !apperrors.IsCode(err, apperrors.CodeInvalidToken) {
				status = http.StatusInternalServerError
				code = "auth_failed"
			}
			abortWithError(c, NewHTTPError(status, code, appMessage(err), err))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// optionalAuthMiddleware attaches claims when a valid bearer token is present and
// otherwise lets the request through anonymously.
func optionalAuthMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if ok {
			if claims, err := svc.ValidateToken(c.Request.Context(), token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
