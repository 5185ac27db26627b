package attendance

import (
	"sort"
	"time"
)

// TrendPoint is the overall percentage observed at a given date. Dates are supplied by the caller.
type TrendPoint struct {
	Date       time.Time `json:"date"`
	Percentage float64   `json:"percentage"`
}

type CourseSummary struct {
	CourseID        string  `json:"course_id"`
	CourseCode      string  `json:"course_code"`
	CourseName      string  `json:"course_name"`
	TotalClasses    int     `json:"total_classes"`
	AttendedClasses int     `json:"attended_classes"`
	Percentage      float64 `json:"percentage"`
	Status          Status  `json:"status"`
	// ClassesNeeded to get back to SafeThreshold; 0 when already safe.
	// A course with no class held yet is Critical at 0% but also needs 0: the projection
	// counts from the classes held, and there are none to make up.
	ClassesNeeded int `json:"classes_needed"`
}

type Analytics struct {
	OverallPercentage     float64         `json:"overall_percentage"`
	OverallStatus         Status          `json:"overall_status"`
	TotalCourses          int             `json:"total_courses"`
	CoursesAboveThreshold int             `json:"courses_above_threshold"`
	CoursesBelowThreshold int             `json:"courses_below_threshold"`
	Courses               []CourseSummary `json:"courses"`
	Trend                 []TrendPoint    `json:"trend"`
}

// Summarize derives the percentage, status and catch-up count of a single course.
func Summarize(c CourseAttendance) CourseSummary {
	pct := c.Percentage()
	s := CourseSummary{
		CourseID:        c.CourseID,
		CourseCode:      c.CourseCode,
		CourseName:      c.CourseName,
		TotalClasses:    c.TotalClasses,
		AttendedClasses: c.AttendedClasses,
		Percentage:      pct,
		Status:          Classify(pct),
	}
	// malformed snapshots simply get no projection
	if res, err := ProjectRequiredClasses(ProjectionRequest{
		TotalClasses:     c.TotalClasses,
		AttendedClasses:  c.AttendedClasses,
		TargetPercentage: SafeThreshold,
	}); err == nil {
		s.ClassesNeeded = res.AdditionalClassesNeeded
	}
	return s
}

// Analyze rolls courses up into the overall picture. The trend is returned sorted by date; inputs are not modified.
func Analyze(courses []CourseAttendance, trend []TrendPoint) Analytics {
	overall := OverallPercentage(courses)
	a := Analytics{
		OverallPercentage: overall,
		OverallStatus:     Classify(overall),
		TotalCourses:      len(courses),
		Courses:           make([]CourseSummary, 0, len(courses)),
		Trend:             make([]TrendPoint, len(trend)),
	}
	for _, c := range courses {
		s := Summarize(c)
		if s.Percentage >= SafeThreshold {
			a.CoursesAboveThreshold++
		} else {
			a.CoursesBelowThreshold++
		}
		a.Courses = append(a.Courses, s)
	}

	copy(a.Trend, trend)
	sort.SliceStable(a.Trend, func(i, j int) bool { return a.Trend[i].Date.Before(a.Trend[j].Date) })
	return a
}

// AtRisk returns the courses that are not Safe, in input order.
func (a Analytics) AtRisk() []CourseSummary {
	risky := make([]CourseSummary, 0)
	for _, c := range a.Courses {
		if c.Status != Safe {
			risky = append(risky, c)
		}
	}
	return risky
}
