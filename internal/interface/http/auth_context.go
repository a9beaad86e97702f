package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/domain/event"
)

const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

func actorFromClaims(claims auth.Claims) event.Actor {
	return event.Actor{
		UserID:   claims.UserID,
		Role:     claims.Role,
		ClubName: claims.ClubName,
		ClubSlug: claims.ClubSlug,
	}
}

// viewer returns the caller as an actor when a valid token was presented.
func viewer(c *gin.Context) *event.Actor {
	claims, ok := getClaims(c)
	if !ok {
		return nil
	}
	actor := actorFromClaims(claims)
	return &actor
}
