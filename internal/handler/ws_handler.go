package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/acadex/gradepoint-backend/internal/middleware"
	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/service"
	ws "github.com/acadex/gradepoint-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live recalculation results. Each inbound edit carries
// the client's complete entry list; the server recomputes and answers with
// the fresh value. Nothing the client types is stored: per-connection
// state is just the previous result of each kind, used for the changed
// flag, and it dies with the connection.
type WSHandler struct {
	calcService *service.CalcService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(calcService *service.CalcService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		calcService: calcService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// LiveStream godoc
// WS /ws/v1/live/stream?token=...
// Upgrades to WebSocket for live GPA/CGPA recalculation.
func (h *WSHandler) LiveStream(c *gin.Context) {
	claims := middleware.GetLiveClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("session_id", claims.ID).
		Logger()

	wsLog.Info().Msg("Live session connected")

	// Previous results for the changed flag, per kind.
	var (
		lastGPA  *model.GPAResponse
		lastCGPA *model.CGPAResponse
	)

	for {
		data, err := ws.ReadRaw(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		var env ws.RequestEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			ws.WriteError(conn, "invalid message")
			continue
		}

		switch env.Action {
		case ws.ActionCourses:
			lastGPA = h.handleCourses(conn, wsLog, data, lastGPA)
		case ws.ActionTerms:
			lastCGPA = h.handleTerms(conn, wsLog, data, lastCGPA)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(env.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(env.Action))
		}
	}
}

// handleCourses recomputes the term GPA and reports whether the result
// moved since the previous courses message.
func (h *WSHandler) handleCourses(conn *websocket.Conn, wsLog zerolog.Logger, data []byte, last *model.GPAResponse) *model.GPAResponse {
	var req ws.CoursesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		ws.WriteError(conn, "invalid courses payload")
		return last
	}

	res := h.calcService.GPA(req.Courses, model.UsageSourceWS)
	changed := gpaChanged(last, res)

	if err := ws.WriteTyped(conn, ws.GPAResultResponse{
		Event:            ws.EventResult,
		Kind:             model.UsageKindGPA,
		GPA:              res.GPA,
		TotalCreditHours: res.TotalCreditHours,
		Changed:          changed,
	}); err != nil {
		wsLog.Debug().Err(err).Msg("write result failed")
	}

	return &res
}

// handleTerms recomputes the cumulative GPA and reports whether the
// result moved since the previous terms message.
func (h *WSHandler) handleTerms(conn *websocket.Conn, wsLog zerolog.Logger, data []byte, last *model.CGPAResponse) *model.CGPAResponse {
	var req ws.TermsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		ws.WriteError(conn, "invalid terms payload")
		return last
	}

	res := h.calcService.CGPA(req.Terms, model.UsageSourceWS)
	changed := cgpaChanged(last, res)

	if err := ws.WriteTyped(conn, ws.CGPAResultResponse{
		Event:            ws.EventResult,
		Kind:             model.UsageKindCGPA,
		CGPA:             res.CGPA,
		TotalCreditHours: res.TotalCreditHours,
		Changed:          changed,
	}); err != nil {
		wsLog.Debug().Err(err).Msg("write result failed")
	}

	return &res
}

// gpaChanged is true on the first result and whenever the displayed pair
// moves.
func gpaChanged(prev *model.GPAResponse, cur model.GPAResponse) bool {
	return prev == nil || prev.GPA != cur.GPA || prev.TotalCreditHours != cur.TotalCreditHours
}

// cgpaChanged treats the null (undefined) value as its own state: null to
// null is unchanged, null to any number and back are changes.
func cgpaChanged(prev *model.CGPAResponse, cur model.CGPAResponse) bool {
	if prev == nil {
		return true
	}
	if prev.TotalCreditHours != cur.TotalCreditHours {
		return true
	}
	switch {
	case prev.CGPA == nil && cur.CGPA == nil:
		return false
	case prev.CGPA == nil || cur.CGPA == nil:
		return true
	default:
		return *prev.CGPA != *cur.CGPA
	}
}
