package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadex/gradepoint-backend/internal/response"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards operator routes with the deployment admin key.
// An unset hash closes the admin surface rather than opening it.
func RequireAdminKey(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			response.AbortFail(c, http.StatusServiceUnavailable, response.ErrAdminDisabled)
			return
		}

		key := c.GetHeader(adminKeyHeader)
		if key == "" {
			// Fallback for EventSource (SSE) which cannot send headers.
			key = c.Query("admin_key")
		}
		if key == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAdminKeyInvalid)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)) != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAdminKeyInvalid)
			return
		}

		c.Next()
	}
}
