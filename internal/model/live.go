package model

import "time"

// LiveSessionResponse is returned when an anonymous live-calculation
// session is opened. The token authorizes the WebSocket stream until
// ExpiresAt; it carries no user identity.
type LiveSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
