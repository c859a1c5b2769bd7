package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/acadex/gradepoint-backend/internal/response"
	"github.com/acadex/gradepoint-backend/internal/service"
)

const (
	// ContextKeyLiveClaims is the Gin context key for live-session claims.
	ContextKeyLiveClaims = "live_claims"
)

// RequireLiveSession validates a live-session token and checks that the
// session is still registered in Redis. The token comes from the
// Authorization header, with a ?token= fallback for WebSocket and
// EventSource clients that cannot send headers.
func RequireLiveSession(liveService *service.LiveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractLiveToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := liveService.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if err := liveService.ValidateSession(c.Request.Context(), claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Set(ContextKeyLiveClaims, claims)
		c.Next()
	}
}

// GetLiveClaims retrieves the live-session claims from the Gin context.
func GetLiveClaims(c *gin.Context) *service.LiveClaims {
	val, exists := c.Get(ContextKeyLiveClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.LiveClaims)
	if !ok {
		return nil
	}
	return claims
}

func extractLiveToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}
