package academic

import "context"

// AllTerms selects every term in FilterByTerm.
const AllTerms = "All"

// GradeRecord is an immutable grade entry for one course in one term.
type GradeRecord struct {
	CourseID    string  `json:"course_id"`
	CourseCode  string  `json:"course_code"`
	CourseName  string  `json:"course_name"`
	Credits     float64 `json:"credits"`
	LetterGrade string  `json:"letter_grade"`
	GradePoints float64 `json:"grade_points"`
	Term        string  `json:"term"`
}

// Dashboard is what the data provider hands over: grades plus the externally computed scalars.
type Dashboard struct {
	CGPA             float64       `json:"cgpa"`
	SGPA             float64       `json:"sgpa"`
	TotalCredits     float64       `json:"total_credits"`
	CompletedCredits float64       `json:"completed_credits"`
	Grades           []GradeRecord `json:"grades"`
}

// Source supplies a student's academic dashboard.
type Source interface {
	Dashboard(ctx context.Context, regNo string) (Dashboard, error)
}

// Rollup is derived from a Dashboard, never stored.
type Rollup struct {
	CGPA             float64 `json:"cgpa"`
	SGPA             float64 `json:"sgpa"`
	TotalCredits     float64 `json:"total_credits"`
	CompletedCredits float64 `json:"completed_credits"`
	CompletionRatio  float64 `json:"completion_ratio"`
}

// TermView is the rollup together with the grades of the selected term.
type TermView struct {
	Rollup Rollup        `json:"rollup"`
	Term   string        `json:"term"`
	Terms  []string      `json:"terms"`
	Grades []GradeRecord `json:"grades"`
}
