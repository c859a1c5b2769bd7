package gradescale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acadex/gradepoint-backend/internal/gradescale"
)

func TestEntriesOrderAndValues(t *testing.T) {
	want := []gradescale.Entry{
		{Grade: gradescale.GradeA, Points: 4.0},
		{Grade: gradescale.GradeAMinus, Points: 3.75},
		{Grade: gradescale.GradeBPlus, Points: 3.5},
		{Grade: gradescale.GradeB, Points: 3.0},
		{Grade: gradescale.GradeCPlus, Points: 2.5},
		{Grade: gradescale.GradeC, Points: 2.0},
		{Grade: gradescale.GradeDPlus, Points: 1.5},
		{Grade: gradescale.GradeD, Points: 1.0},
		{Grade: gradescale.GradeF, Points: 0.0},
	}
	require.Equal(t, want, gradescale.Entries())
}

func TestPointsLookup(t *testing.T) {
	pts, ok := gradescale.Points("A-")
	require.True(t, ok)
	require.Equal(t, 3.75, pts)

	pts, ok = gradescale.Points("F")
	require.True(t, ok)
	require.Equal(t, 0.0, pts)
}

func TestPointsUnknownGrade(t *testing.T) {
	for _, g := range []gradescale.Grade{"E", "a", "A+", " B", ""} {
		_, ok := gradescale.Points(g)
		require.False(t, ok, "grade %q should not resolve", g)
	}
}

func TestGradesMatchEntries(t *testing.T) {
	grades := gradescale.Grades()
	entries := gradescale.Entries()
	require.Len(t, grades, len(entries))
	for i, e := range entries {
		require.Equal(t, e.Grade, grades[i])
	}
}

func TestCreditHourOptions(t *testing.T) {
	require.Equal(t, []int{1, 2, 3, 4}, gradescale.CreditHourOptions())
}

func TestDefaults(t *testing.T) {
	require.Equal(t, 3, gradescale.DefaultCreditHours)
	require.Equal(t, gradescale.GradeA, gradescale.DefaultGrade)

	// The defaults must be members of their own option sets.
	require.Contains(t, gradescale.CreditHourOptions(), gradescale.DefaultCreditHours)
	_, ok := gradescale.Points(gradescale.DefaultGrade)
	require.True(t, ok)
}

// TestReturnedSlicesAreCopies guards the package tables against mutation
// through returned values.
func TestReturnedSlicesAreCopies(t *testing.T) {
	entries := gradescale.Entries()
	entries[0].Points = 99

	grades := gradescale.Grades()
	grades[0] = "Z"

	opts := gradescale.CreditHourOptions()
	opts[0] = 42

	fresh := gradescale.Entries()
	require.Equal(t, 4.0, fresh[0].Points)
	require.Equal(t, gradescale.GradeA, gradescale.Grades()[0])
	require.Equal(t, 1, gradescale.CreditHourOptions()[0])
}
