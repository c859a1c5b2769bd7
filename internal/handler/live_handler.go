package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acadex/gradepoint-backend/internal/middleware"
	"github.com/acadex/gradepoint-backend/internal/response"
	"github.com/acadex/gradepoint-backend/internal/service"
)

// LiveHandler manages anonymous live-calculation sessions over HTTP. The
// stream itself is served by WSHandler.
type LiveHandler struct {
	liveService *service.LiveService
	log         zerolog.Logger
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(liveService *service.LiveService, log zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		liveService: liveService,
		log:         log.With().Str("component", "live_handler").Logger(),
	}
}

// OpenSession godoc
// POST /api/v1/live/sessions
func (h *LiveHandler) OpenSession(c *gin.Context) {
	sess, err := h.liveService.OpenSession(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("open live session failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.log.Debug().Str("session_id", sess.SessionID).Msg("live session opened")
	response.Success(c, http.StatusCreated, sess)
}

// CloseSession godoc
// DELETE /api/v1/live/sessions/current
// Ends the caller's session ahead of its TTL.
func (h *LiveHandler) CloseSession(c *gin.Context) {
	claims := middleware.GetLiveClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.liveService.EndSession(c.Request.Context(), claims.ID); err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("close live session failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session closed"})
}
