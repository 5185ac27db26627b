package attendance

import (
	"encoding/json"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campuslink/core"
)

func sampleCourses() []CourseAttendance {
	return []CourseAttendance{
		{CourseID: "1", CourseCode: "CSE1001", CourseName: "Data Structures", TotalClasses: 40, AttendedClasses: 35},
		{CourseID: "2", CourseCode: "CSE1002", CourseName: "Algorithms", TotalClasses: 38, AttendedClasses: 28},
		{CourseID: "3", CourseCode: "MAT1001", CourseName: "Linear Algebra", TotalClasses: 42, AttendedClasses: 40},
		{CourseID: "4", CourseCode: "PHY1001", CourseName: "Physics", TotalClasses: 20, AttendedClasses: 12},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleCourses()[1])
	assert.InDelta(t, 73.68, s.Percentage, 0.01)
	assert.Equal(t, Warning, s.Status)
	assert.Equal(t, 2, s.ClassesNeeded)

	s = Summarize(sampleCourses()[0])
	assert.Equal(t, Safe, s.Status)
	assert.Equal(t, 0, s.ClassesNeeded)

	// malformed snapshot: no projection, no panic
	s = Summarize(CourseAttendance{TotalClasses: 3, AttendedClasses: 5})
	assert.Equal(t, 0, s.ClassesNeeded)

	// nothing held yet: Critical at 0%, nothing to make up
	s = Summarize(CourseAttendance{CourseCode: "CSE3001"})
	assert.Equal(t, 0.0, s.Percentage)
	assert.Equal(t, Critical, s.Status)
	assert.Equal(t, 0, s.ClassesNeeded)
}

func TestAnalyze(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	trend := []TrendPoint{
		{Date: now, Percentage: 85.5},
		{Date: now.AddDate(0, 0, -7), Percentage: 82},
		{Date: now.AddDate(0, 0, -3), Percentage: 84.2},
	}
	courses := sampleCourses()

	a := Analyze(courses, trend)

	assert.Equal(t, 4, a.TotalCourses)
	assert.Equal(t, 2, a.CoursesAboveThreshold)
	assert.Equal(t, 2, a.CoursesBelowThreshold)
	assert.InDelta(t, 115.0/140.0*100, a.OverallPercentage, 1e-9)
	assert.Equal(t, Safe, a.OverallStatus)
	require.Len(t, a.Courses, 4)
	assert.Equal(t, Critical, a.Courses[3].Status)

	require.Len(t, a.Trend, 3)
	assert.Equal(t, 82.0, a.Trend[0].Percentage)
	assert.Equal(t, 84.2, a.Trend[1].Percentage)
	assert.Equal(t, 85.5, a.Trend[2].Percentage)
	// input untouched
	assert.Equal(t, 85.5, trend[0].Percentage)

	risky := a.AtRisk()
	require.Len(t, risky, 2)
	assert.Equal(t, "CSE1002", risky[0].CourseCode)
	assert.Equal(t, "PHY1001", risky[1].CourseCode)

	assert.Equal(t, a, Analyze(courses, trend))
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil, nil)
	assert.Equal(t, 0.0, a.OverallPercentage)
	assert.Equal(t, Critical, a.OverallStatus)
	assert.Empty(t, a.Courses)
	assert.Empty(t, a.Trend)
	assert.Empty(t, a.AtRisk())
}

func TestAnalytics_JSON(t *testing.T) {
	data, err := json.Marshal(Analyze(sampleCourses()[:1], nil))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"overall_status":"Safe"`)
	assert.Contains(t, string(data), `"status":"Safe"`)
}

func TestLowAttendanceDigest(t *testing.T) {
	to := mail.Address{Name: "Student Name", Address: "21bce0001@vitstudent.ac.in"}

	assert.Nil(t, LowAttendanceDigest(to, Analyze(sampleCourses()[:1], nil)))

	msg := LowAttendanceDigest(to, Analyze(sampleCourses(), nil))
	require.NotNil(t, msg)
	assert.Equal(t, []mail.Address{to}, msg.To)
	assert.Equal(t, "Attendance below 75%", msg.Subject)

	require.NoError(t, msg.Render(core.ContextData{AppName: "CampusLink", FrontendBaseURL: "http://localhost"}))
	assert.Contains(t, msg.TextContent, "Hi Student Name")
	assert.Contains(t, msg.TextContent, "CSE1002 Algorithms: 73.7% (Warning), 28/38 classes, attend the next 2 to reach 75%")
	assert.Contains(t, msg.TextContent, "PHY1001 Physics: 60.0% (Critical)")
	assert.NotContains(t, msg.TextContent, "CSE1001")
	assert.Contains(t, msg.HTMLContent, "<li>CSE1002 Algorithms")
}
