package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/campuslink/apps/api/echo"
	"github.com/trezcool/campuslink/core/attendance"
)

func Test_attendanceApi_list(t *testing.T) {
	token, usr := login(t, "21BCE0101")

	courses, err := data.Attendance(context.Background(), usr.RegNo)
	require.NoError(t, err)
	want := echoapi.AttendanceResponse{
		OverallPercentage: attendance.OverallPercentage(courses),
		OverallStatus:     attendance.Safe,
	}
	for _, c := range courses {
		want.Courses = append(want.Courses, attendance.Summarize(c))
	}

	tests := []httpTest{
		{name: "Auth required", path: "/v1/attendance", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Courses", path: "/v1/attendance", token: token, wantData: marchallObj(t, want)},
	}
	runHTTPTests(t, tests)
}

func Test_attendanceApi_analytics(t *testing.T) {
	token, usr := login(t, "21BCE0102")
	ctx := context.Background()

	courses, err := data.Attendance(ctx, usr.RegNo)
	require.NoError(t, err)
	trend, err := data.Trend(ctx, usr.RegNo)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/attendance/analytics", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Analytics", path: "/v1/attendance/analytics", token: token, wantData: marchallObj(t, attendance.Analyze(courses, trend))},
	}
	runHTTPTests(t, tests)
}

func Test_attendanceApi_project(t *testing.T) {
	token, _ := login(t, "21BCE0103")
	path := "/v1/attendance/projection"
	body := func(total, attended int, target float64) []byte {
		return marchallObj(t, map[string]interface{}{
			"total_classes":     total,
			"attended_classes":  attended,
			"target_percentage": target,
		})
	}

	tests := []httpTest{
		{name: "Auth required", method: http.MethodPost, path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "all fields required", method: http.MethodPost, path: path, token: token, body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"total_classes":     "this field is required",
				"attended_classes":  "this field is required",
				"target_percentage": "this field is required",
			}),
		},
		{
			name: "attended more than held", method: http.MethodPost, path: path, token: token, body: body(10, 11, 75),
			wantCode: http.StatusBadRequest, wantKeys: []string{"attended_classes"},
		},
		{
			name: "negative total", method: http.MethodPost, path: path, token: token, body: body(-1, 0, 75),
			wantCode: http.StatusBadRequest, wantKeys: []string{"total_classes"},
		},
		{
			name: "target out of range", method: http.MethodPost, path: path, token: token, body: body(10, 5, 101),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"target_percentage": "target_percentage must be greater than 0 and at most 100"}),
		},
		{
			name: "needs 8 classes", method: http.MethodPost, path: path, token: token, body: body(40, 28, 75),
			wantData: marchallObj(t, attendance.ProjectionResult{CurrentPercentage: 70, AdditionalClassesNeeded: 8}),
		},
		{
			name: "already met", method: http.MethodPost, path: path, token: token, body: body(40, 35, 75),
			wantData: marchallObj(t, attendance.ProjectionResult{CurrentPercentage: 87.5, AlreadyMet: true}),
		},
		{
			name: "no classes held yet", method: http.MethodPost, path: path, token: token, body: body(0, 0, 75),
			wantData: marchallObj(t, attendance.ProjectionResult{CurrentPercentage: 0, AdditionalClassesNeeded: 0}),
		},
		{
			name: "100% unreachable", method: http.MethodPost, path: path, token: token, body: body(10, 5, 100),
			wantCode: http.StatusUnprocessableEntity,
			wantData: marchallObj(t, map[string]interface{}{
				"error":              (&attendance.UnreachableTargetError{TargetPercentage: 100, CurrentPercentage: 50}).Error(),
				"target_percentage":  100,
				"current_percentage": 50,
			}),
		},
	}
	runHTTPTests(t, tests)
}
