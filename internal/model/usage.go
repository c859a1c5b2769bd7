package model

import "time"

// Usage event kinds.
const (
	UsageKindGPA  = "gpa"
	UsageKindCGPA = "cgpa"
)

// Usage event sources.
const (
	UsageSourceHTTP = "http"
	UsageSourceWS   = "ws"
)

// UsageEvent is one counts-only telemetry increment queued for
// aggregation. It records that a calculation happened and how large it
// was, never names, grades, or results.
type UsageEvent struct {
	Kind         string    `json:"kind"`
	Source       string    `json:"source"`
	Entries      int       `json:"entries"`
	ValidEntries int       `json:"valid_entries"`
	CreditHours  float64   `json:"credit_hours"`
	OccurredAt   time.Time `json:"at"`
}

// UsageIncrement is a pre-aggregated counter delta applied to one
// (day, kind, source) cell of the usage table.
type UsageIncrement struct {
	Day    time.Time
	Kind   string
	Source string
	Count  int64
}

// UsageDay is one aggregated row of the daily usage report.
type UsageDay struct {
	Day    string `json:"day"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// UsageQuery bounds the usage report window.
type UsageQuery struct {
	Days int `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

// UsageReportResponse is the admin usage report payload.
type UsageReportResponse struct {
	Days  int        `json:"days"`
	Total int64      `json:"total"`
	Rows  []UsageDay `json:"rows"`
}
