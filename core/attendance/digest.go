package attendance

import (
	"net/mail"
	"strconv"

	"github.com/trezcool/campuslink/core"
)

const digestTemplate = "low_attendance"

// DigestData feeds the low_attendance email templates.
type DigestData struct {
	StudentName       string
	OverallPercentage float64
	OverallStatus     Status
	Target            float64
	Courses           []CourseSummary
}

// LowAttendanceDigest builds the reminder sent to a student with courses below SafeThreshold.
// It returns nil when every course is safe.
func LowAttendanceDigest(to mail.Address, a Analytics) *core.EmailMessage {
	risky := a.AtRisk()
	if len(risky) == 0 {
		return nil
	}
	return &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      "Attendance below " + formatPct(SafeThreshold),
		TemplateName: digestTemplate,
		TemplateData: DigestData{
			StudentName:       to.Name,
			OverallPercentage: a.OverallPercentage,
			OverallStatus:     a.OverallStatus,
			Target:            SafeThreshold,
			Courses:           risky,
		},
	}
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
