package model

// GradeScaleEntry is one grade-to-points row of the published scale.
type GradeScaleEntry struct {
	Grade  string  `json:"grade"`
	Points float64 `json:"points"`
}

// GradeScaleResponse is the public grade scale payload, including the
// form defaults clients should preselect.
type GradeScaleResponse struct {
	Grades             []GradeScaleEntry `json:"grades"`
	CreditHourOptions  []int             `json:"credit_hour_options"`
	DefaultCreditHours int               `json:"default_credit_hours"`
	DefaultGrade       string            `json:"default_grade"`
}
