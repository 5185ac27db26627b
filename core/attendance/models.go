package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Attendance policy: percentages at or above SafeThreshold are safe,
// those at or above WarningThreshold are a warning, anything below is critical.
const (
	SafeThreshold    = 75.0
	WarningThreshold = 65.0
)

// Status is the attendance-risk band of a percentage. It is always derived, never stored.
type Status int

const (
	Safe Status = iota + 1
	Warning
	Critical
)

var statusLabels = map[Status]string{
	Safe:     "Safe",
	Warning:  "Warning",
	Critical: "Critical",
}

func (s Status) String() string {
	if lbl, ok := statusLabels[s]; ok {
		return lbl
	}
	return "Unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusLabels[s]; !ok {
		return nil, errors.Errorf("invalid attendance status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for st, lbl := range statusLabels {
		if lbl == string(text) {
			*s = st
			return nil
		}
	}
	return errors.Errorf("invalid attendance status %q", string(text))
}

// Source supplies a student's attendance records and overall trend.
type Source interface {
	Attendance(ctx context.Context, regNo string) ([]CourseAttendance, error)
	Trend(ctx context.Context, regNo string) ([]TrendPoint, error)
}

// CourseAttendance is an immutable snapshot of one course's attendance.
// AttendedClasses <= TotalClasses is expected from whoever builds it.
type CourseAttendance struct {
	CourseID        string    `json:"course_id"`
	CourseCode      string    `json:"course_code"`
	CourseName      string    `json:"course_name"`
	TotalClasses    int       `json:"total_classes"`
	AttendedClasses int       `json:"attended_classes"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Percentage is AttendedClasses/TotalClasses*100, or 0 when no class was held.
func (c CourseAttendance) Percentage() float64 {
	return percentage(c.AttendedClasses, c.TotalClasses)
}

func (c CourseAttendance) Status() Status {
	return Classify(c.Percentage())
}

// ProjectionRequest asks how many consecutive attended classes are needed to reach TargetPercentage.
type ProjectionRequest struct {
	TotalClasses     int     `json:"total_classes"`
	AttendedClasses  int     `json:"attended_classes"`
	TargetPercentage float64 `json:"target_percentage"`
}

type ProjectionResult struct {
	CurrentPercentage       float64 `json:"current_percentage"`
	AlreadyMet              bool    `json:"already_met"`
	AdditionalClassesNeeded int     `json:"additional_classes_needed"`
}

func percentage(attended, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(attended) / float64(total) * 100
}
