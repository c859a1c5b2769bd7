package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/acadex/gradepoint-backend/internal/handler"
	"github.com/acadex/gradepoint-backend/internal/middleware"
	"github.com/acadex/gradepoint-backend/internal/service"
)

// dialLiveStream starts a test server whose stream route injects session
// claims directly, standing in for the live-session middleware.
func dialLiveStream(t *testing.T) *gorilla.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	wsHandler := handler.NewWSHandler(newCalcService(), zerolog.Nop(), nil)

	r := gin.New()
	r.GET("/ws/v1/live/stream", func(c *gin.Context) {
		c.Set(middleware.ContextKeyLiveClaims, &service.LiveClaims{
			RegisteredClaims: jwt.RegisteredClaims{ID: "test-session"},
			TokenType:        "live",
		})
		wsHandler.LiveStream(c)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/live/stream"
	conn, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

// sendRecv writes one message and decodes the single reply it produces.
func sendRecv(t *testing.T, conn *gorilla.Conn, msg string) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(msg)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLiveStreamCourses(t *testing.T) {
	conn := dialLiveStream(t)

	msg := `{"action":"courses","courses":[
		{"name":"Algebra","credit_hours":3,"grade":"A"},
		{"name":"History","credit_hours":3,"grade":"B"}
	]}`

	out := sendRecv(t, conn, msg)
	require.Equal(t, "result", out["event"])
	require.Equal(t, "gpa", out["kind"])
	require.Equal(t, 3.5, out["gpa"])
	require.Equal(t, 6.0, out["total_credit_hours"])
	require.Equal(t, true, out["changed"])

	// Same list again: the value did not move.
	out = sendRecv(t, conn, msg)
	require.Equal(t, 3.5, out["gpa"])
	require.Equal(t, false, out["changed"])

	// Dropping a course moves the value.
	out = sendRecv(t, conn, `{"action":"courses","courses":[{"credit_hours":3,"grade":"A"}]}`)
	require.Equal(t, 4.0, out["gpa"])
	require.Equal(t, 3.0, out["total_credit_hours"])
	require.Equal(t, true, out["changed"])
}

func TestLiveStreamTerms(t *testing.T) {
	conn := dialLiveStream(t)

	// An empty list has no cumulative GPA; the first result still counts
	// as a change.
	out := sendRecv(t, conn, `{"action":"terms","terms":[]}`)
	require.Equal(t, "result", out["event"])
	require.Equal(t, "cgpa", out["kind"])
	cgpa, present := out["cgpa"]
	require.True(t, present)
	require.Nil(t, cgpa)
	require.Equal(t, 0.0, out["total_credit_hours"])
	require.Equal(t, true, out["changed"])

	// Null to null is not a change.
	out = sendRecv(t, conn, `{"action":"terms","terms":[]}`)
	require.Equal(t, false, out["changed"])

	// Null to a number is.
	out = sendRecv(t, conn, `{"action":"terms","terms":[{"gpa":3.5,"credit_hours":15}]}`)
	require.Equal(t, 3.5, out["cgpa"])
	require.Equal(t, 15.0, out["total_credit_hours"])
	require.Equal(t, true, out["changed"])
}

func TestLiveStreamTracksKindsIndependently(t *testing.T) {
	conn := dialLiveStream(t)

	courses := `{"action":"courses","courses":[{"credit_hours":3,"grade":"A"}]}`

	out := sendRecv(t, conn, courses)
	require.Equal(t, true, out["changed"])

	// A terms message in between must not reset the GPA baseline.
	out = sendRecv(t, conn, `{"action":"terms","terms":[{"gpa":4,"credit_hours":3}]}`)
	require.Equal(t, "cgpa", out["kind"])
	require.Equal(t, true, out["changed"])

	out = sendRecv(t, conn, courses)
	require.Equal(t, "gpa", out["kind"])
	require.Equal(t, false, out["changed"])
}

func TestLiveStreamPing(t *testing.T) {
	conn := dialLiveStream(t)

	out := sendRecv(t, conn, `{"action":"ping"}`)
	require.Equal(t, "pong", out["event"])
}

func TestLiveStreamUnknownAction(t *testing.T) {
	conn := dialLiveStream(t)

	out := sendRecv(t, conn, `{"action":"reset"}`)
	require.Equal(t, "error", out["event"])
	require.Contains(t, out["error"], "unknown action")
}

func TestLiveStreamInvalidMessage(t *testing.T) {
	conn := dialLiveStream(t)

	out := sendRecv(t, conn, `{not json`)
	require.Equal(t, "error", out["event"])

	// The connection survives a bad message.
	out = sendRecv(t, conn, `{"action":"ping"}`)
	require.Equal(t, "pong", out["event"])
}
