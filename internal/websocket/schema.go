package websocket

import (
	"github.com/acadex/gradepoint-backend/internal/model"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionCourses Action = "courses"
	ActionTerms   Action = "terms"
	ActionPing    Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// CoursesRequest carries the complete course list after an edit. The
// server keeps no entry state; every message recomputes from scratch.
type CoursesRequest struct {
	Action  Action              `json:"action"`
	Courses []model.CourseInput `json:"courses"`
}

// TermsRequest carries the complete term list after an edit.
type TermsRequest struct {
	Action Action            `json:"action"`
	Terms  []model.TermInput `json:"terms"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventResult Event = "result"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// GPAResultResponse reports a recomputed term GPA. Changed is true on the
// first result and whenever the value differs from the previous GPA result
// on this connection, so clients can animate only real changes.
type GPAResultResponse struct {
	Event            Event   `json:"event"`
	Kind             string  `json:"kind"`
	GPA              float64 `json:"gpa"`
	TotalCreditHours float64 `json:"total_credit_hours"`
	Changed          bool    `json:"changed"`
}

// CGPAResultResponse reports a recomputed cumulative GPA. CGPA is null
// when no term qualified.
type CGPAResultResponse struct {
	Event            Event    `json:"event"`
	Kind             string   `json:"kind"`
	CGPA             *float64 `json:"cgpa"`
	TotalCreditHours float64  `json:"total_credit_hours"`
	Changed          bool     `json:"changed"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
