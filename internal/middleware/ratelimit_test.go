package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/acadex/gradepoint-backend/internal/middleware"
	"github.com/acadex/gradepoint-backend/internal/response"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := middleware.NewRateLimiter(2, time.Minute)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.POST("/limited", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// The bucket starts full at the configured rate.
	require.Equal(t, http.StatusCreated, do().Code)
	require.Equal(t, http.StatusCreated, do().Code)

	w := do()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, response.ErrRateLimitExceeded, errCode(t, w))

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.RemoteAddr = "198.51.100.9:4321"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}
