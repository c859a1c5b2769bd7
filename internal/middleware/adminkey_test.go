package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadex/gradepoint-backend/internal/middleware"
	"github.com/acadex/gradepoint-backend/internal/response"
)

type errorEnvelope struct {
	Error *response.ErrorBody `json:"error"`
}

func newAdminRouter(t *testing.T, keyHash string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/admin/ping", middleware.RequireAdminKey(keyHash), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func adminGet(r *gin.Engine, path, headerKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if headerKey != "" {
		req.Header.Set("X-Admin-Key", headerKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func TestRequireAdminKeyDisabledWhenUnset(t *testing.T) {
	r := newAdminRouter(t, "")

	w := adminGet(r, "/admin/ping", "whatever")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, response.ErrAdminDisabled, errCode(t, w))
}

func TestRequireAdminKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret-admin-key"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newAdminRouter(t, string(hash))

	// No key at all.
	w := adminGet(r, "/admin/ping", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, response.ErrAdminKeyInvalid, errCode(t, w))

	// Wrong key.
	w = adminGet(r, "/admin/ping", "not-the-key")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, response.ErrAdminKeyInvalid, errCode(t, w))

	// Correct key via header.
	w = adminGet(r, "/admin/ping", "super-secret-admin-key")
	require.Equal(t, http.StatusOK, w.Code)

	// Correct key via query fallback, as EventSource clients must use.
	w = adminGet(r, "/admin/ping?admin_key=super-secret-admin-key", "")
	require.Equal(t, http.StatusOK, w.Code)
}
