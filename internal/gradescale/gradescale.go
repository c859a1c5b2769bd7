// Package gradescale holds the institutional grading scale: the fixed
// mapping from letter grades to grade-point values. The scale is immutable
// after package initialization and safe for concurrent readers.
package gradescale

// Grade is a letter grade recognized by the grading scale.
type Grade string

const (
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// Entry pairs a letter grade with its grade-point value.
type Entry struct {
	Grade  Grade
	Points float64
}

// table lists the nine scale entries. The order here is the display order
// the presentation layer offers, so it must not be rearranged.
var table = [...]Entry{
	{GradeA, 4.0},
	{GradeAMinus, 3.75},
	{GradeBPlus, 3.5},
	{GradeB, 3.0},
	{GradeCPlus, 2.5},
	{GradeC, 2.0},
	{GradeDPlus, 1.5},
	{GradeD, 1.0},
	{GradeF, 0.0},
}

// points indexes table for O(1) lookups. Built once at init.
var points = func() map[Grade]float64 {
	m := make(map[Grade]float64, len(table))
	for _, e := range table {
		m[e.Grade] = e.Points
	}
	return m
}()

// creditHourOptions are the credit-hour choices offered by the presentation
// layer's selection inputs. The calculators accept any positive finite
// credit-hour value; this list never restricts computation input.
var creditHourOptions = [...]int{1, 2, 3, 4}

// Presentation defaults for a fresh course row.
const (
	DefaultCreditHours = 3
	DefaultGrade       = GradeA
)

// Points returns the grade-point value for a letter grade.
// ok is false when the grade is not part of the scale.
func Points(g Grade) (pts float64, ok bool) {
	pts, ok = points[g]
	return pts, ok
}

// Grades returns the letter grades in scale order. The slice is a fresh
// copy, so callers cannot disturb the scale.
func Grades() []Grade {
	out := make([]Grade, len(table))
	for i, e := range table {
		out[i] = e.Grade
	}
	return out
}

// Entries returns the scale entries in order, as a fresh copy.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table[:])
	return out
}

// CreditHourOptions returns the credit-hour choices for selection inputs.
func CreditHourOptions() []int {
	out := make([]int, len(creditHourOptions))
	copy(out, creditHourOptions[:])
	return out
}
