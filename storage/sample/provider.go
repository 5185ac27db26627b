// Package sample serves the canned attendance and grade data used until a real university backend exists.
package sample

import (
	"context"
	"time"

	"github.com/trezcool/campuslink/core/academic"
	"github.com/trezcool/campuslink/core/attendance"
)

// Provider returns the same fixtures for every student. Dates are relative to Now.
type Provider struct {
	Now func() time.Time
}

var (
	_ attendance.Source = (*Provider)(nil)
	_ academic.Source   = (*Provider)(nil)
)

func NewProvider(now ...func() time.Time) *Provider {
	clock := time.Now
	if len(now) > 0 && now[0] != nil {
		clock = now[0]
	}
	return &Provider{Now: clock}
}

func (p *Provider) now() time.Time { return p.Now().UTC() }

func (p *Provider) Attendance(ctx context.Context, _ string) ([]attendance.CourseAttendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now()
	return []attendance.CourseAttendance{
		{CourseID: "1", CourseCode: "CSE1001", CourseName: "Data Structures", TotalClasses: 40, AttendedClasses: 35, LastUpdated: now},
		{CourseID: "2", CourseCode: "CSE1002", CourseName: "Algorithms", TotalClasses: 38, AttendedClasses: 28, LastUpdated: now},
		{CourseID: "3", CourseCode: "MAT1001", CourseName: "Linear Algebra", TotalClasses: 42, AttendedClasses: 40, LastUpdated: now},
	}, nil
}

func (p *Provider) Trend(ctx context.Context, _ string) ([]attendance.TrendPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now()
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	return []attendance.TrendPoint{
		{Date: daysAgo(7), Percentage: 82.0},
		{Date: daysAgo(5), Percentage: 83.5},
		{Date: daysAgo(3), Percentage: 84.2},
		{Date: daysAgo(1), Percentage: 85.0},
		{Date: now, Percentage: 85.5},
	}, nil
}

func (p *Provider) Dashboard(ctx context.Context, _ string) (academic.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return academic.Dashboard{}, err
	}
	return academic.Dashboard{
		CGPA:             8.52,
		SGPA:             8.75,
		TotalCredits:     180,
		CompletedCredits: 120,
		Grades: []academic.GradeRecord{
			{CourseID: "1", CourseCode: "CSE1001", CourseName: "Data Structures", Credits: 4, LetterGrade: "A", GradePoints: 9, Term: "Fall 2023"},
			{CourseID: "2", CourseCode: "CSE1002", CourseName: "Algorithms", Credits: 4, LetterGrade: "A+", GradePoints: 10, Term: "Fall 2023"},
			{CourseID: "3", CourseCode: "MAT1001", CourseName: "Linear Algebra", Credits: 3, LetterGrade: "B+", GradePoints: 8, Term: "Fall 2023"},
			{CourseID: "4", CourseCode: "CSE2001", CourseName: "Database Systems", Credits: 4, LetterGrade: "A", GradePoints: 9, Term: "Spring 2024"},
			{CourseID: "5", CourseCode: "CSE2002", CourseName: "Operating Systems", Credits: 4, LetterGrade: "B+", GradePoints: 8, Term: "Spring 2024"},
		},
	}, nil
}
