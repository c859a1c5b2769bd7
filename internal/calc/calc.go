// Package calc computes credit-hour-weighted grade point averages: GPA for a
// single term from its courses, and CGPA across completed terms. Both
// calculators are pure functions. Invalid entries are excluded from the
// aggregate rather than failing the computation, so neither ever returns an
// error.
package calc

import (
	"math"

	"github.com/acadex/gradepoint-backend/internal/gradescale"
)

// Course is one course row in a term GPA calculation. Name is a display
// label only and never participates in the computation.
type Course struct {
	Name        string
	CreditHours float64
	Grade       string
}

// Term is one completed term in a cumulative GPA calculation. Name is a
// display label only.
type Term struct {
	Name        string
	GPA         float64
	CreditHours float64
}

// GPAResult is the outcome of a term GPA calculation. TotalCreditHours sums
// only the courses that were counted.
type GPAResult struct {
	GPA              float64
	TotalCreditHours float64
}

// CGPAResult is the outcome of a cumulative GPA calculation. CGPA is nil
// when no term could be counted, unlike GPA which reports zero in that
// case. The asymmetry is part of the contract: downstream consumers
// distinguish "no data yet" (nil) from a computed zero.
type CGPAResult struct {
	CGPA             *float64
	TotalCreditHours float64
}

// Valid reports whether the course counts toward a GPA: positive finite
// credit hours and a grade present in the grading scale.
func (c Course) Valid() bool {
	if _, ok := gradescale.Points(gradescale.Grade(c.Grade)); !ok {
		return false
	}
	return positiveFinite(c.CreditHours)
}

// Valid reports whether the term counts toward a CGPA: finite GPA within
// [0,4] and positive finite credit hours.
func (t Term) Valid() bool {
	return t.GPA >= 0 && t.GPA <= 4 && positiveFinite(t.CreditHours)
}

// GPA computes the credit-hour-weighted grade point average of one term.
// Courses that fail Valid are skipped entirely: they appear in neither the
// numerator nor the denominator. With no countable course the result is
// {0, 0}, a deliberate zero rather than an absence marker.
func GPA(courses []Course) GPAResult {
	var totalCredits, totalPoints float64
	for _, c := range courses {
		if !c.Valid() {
			continue
		}
		pts, _ := gradescale.Points(gradescale.Grade(c.Grade))
		totalCredits += c.CreditHours
		totalPoints += c.CreditHours * pts
	}

	if totalCredits <= 0 || math.IsInf(totalCredits, 0) {
		return GPAResult{}
	}

	gpa := totalPoints / totalCredits
	if math.IsNaN(gpa) || math.IsInf(gpa, 0) {
		return GPAResult{TotalCreditHours: totalCredits}
	}
	return GPAResult{GPA: round2(gpa), TotalCreditHours: totalCredits}
}

// CGPA computes the cumulative GPA across completed terms, weighting each
// term's GPA by its credit hours. Terms that fail Valid are skipped. With no
// countable term the CGPA is nil.
func CGPA(terms []Term) CGPAResult {
	var totalCredits, totalWeighted float64
	counted := 0
	for _, t := range terms {
		if !t.Valid() {
			continue
		}
		counted++
		totalCredits += t.CreditHours
		totalWeighted += t.GPA * t.CreditHours
	}

	if counted == 0 || totalCredits <= 0 || math.IsInf(totalCredits, 0) {
		return CGPAResult{}
	}

	cgpa := totalWeighted / totalCredits
	if math.IsNaN(cgpa) || math.IsInf(cgpa, 0) {
		zero := 0.0
		return CGPAResult{CGPA: &zero, TotalCreditHours: totalCredits}
	}
	rounded := round2(cgpa)
	return CGPAResult{CGPA: &rounded, TotalCreditHours: totalCredits}
}

// round2 rounds to two decimal places, halves away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// positiveFinite reports x > 0 and not +Inf. NaN fails the comparison on
// its own.
func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
