package model

// CourseInput is one course row submitted for a term GPA calculation.
// Invalid rows are excluded from the average rather than rejected, so the
// only binding performed here is JSON shape and number typing.
type CourseInput struct {
	Name        string  `json:"name"`
	CreditHours float64 `json:"credit_hours"`
	Grade       string  `json:"grade"`
}

// GPARequest is the payload for a term GPA calculation. An empty course
// list is a valid request.
type GPARequest struct {
	Courses []CourseInput `json:"courses"`
}

// GPAResponse is the result of a term GPA calculation.
type GPAResponse struct {
	GPA              float64 `json:"gpa"`
	TotalCreditHours float64 `json:"total_credit_hours"`
}

// TermInput is one completed-term row submitted for a CGPA calculation.
type TermInput struct {
	Name        string  `json:"name"`
	GPA         float64 `json:"gpa"`
	CreditHours float64 `json:"credit_hours"`
}

// CGPARequest is the payload for a cumulative GPA calculation. An empty
// term list is a valid request.
type CGPARequest struct {
	Terms []TermInput `json:"terms"`
}

// CGPAResponse is the result of a cumulative GPA calculation. CGPA is null
// when no term qualified for the average.
type CGPAResponse struct {
	CGPA             *float64 `json:"cgpa"`
	TotalCreditHours float64  `json:"total_credit_hours"`
}
