package attendance

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campuslink/core"
)

func TestOverallPercentage(t *testing.T) {
	tests := []struct {
		name    string
		courses []CourseAttendance
		want    float64
	}{
		{name: "no courses", want: 0},
		{name: "no classes held", courses: []CourseAttendance{{TotalClasses: 0}, {TotalClasses: 0}}, want: 0},
		{
			name: "summed, not averaged",
			courses: []CourseAttendance{
				{TotalClasses: 10, AttendedClasses: 10},
				{TotalClasses: 30, AttendedClasses: 15},
			},
			want: 62.5,
		},
		{
			name: "sample courses",
			courses: []CourseAttendance{
				{TotalClasses: 40, AttendedClasses: 35},
				{TotalClasses: 38, AttendedClasses: 28},
				{TotalClasses: 42, AttendedClasses: 40},
			},
			want: 103.0 / 120.0 * 100,
		},
		{name: "all attended", courses: []CourseAttendance{{TotalClasses: 7, AttendedClasses: 7}}, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverallPercentage(tt.courses)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		pct  float64
		want Status
	}{
		{pct: 100, want: Safe},
		{pct: 75, want: Safe},
		{pct: 74.9, want: Warning},
		{pct: 65, want: Warning},
		{pct: 64.9, want: Critical},
		{pct: 0, want: Critical},
	}
	for _, tt := range tests {
		if got := Classify(tt.pct); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestStatus_Text(t *testing.T) {
	for _, st := range []Status{Safe, Warning, Critical} {
		txt, err := st.MarshalText()
		require.NoError(t, err)

		var back Status
		require.NoError(t, back.UnmarshalText(txt))
		assert.Equal(t, st, back)
	}

	_, err := Status(0).MarshalText()
	assert.Error(t, err)
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("Fine")))
	assert.Equal(t, "Unknown", Status(42).String())
}

func TestProjectRequiredClasses(t *testing.T) {
	tests := []struct {
		name    string
		req     ProjectionRequest
		want    ProjectionResult
		wantErr string // "validation" | "unreachable"
		fields  []string
	}{
		{
			name: "below target",
			req:  ProjectionRequest{TotalClasses: 40, AttendedClasses: 28, TargetPercentage: 75},
			want: ProjectionResult{CurrentPercentage: 70, AdditionalClassesNeeded: 8},
		},
		{
			name: "already met",
			req:  ProjectionRequest{TotalClasses: 40, AttendedClasses: 35, TargetPercentage: 75},
			want: ProjectionResult{CurrentPercentage: 87.5, AlreadyMet: true},
		},
		{
			name: "exactly on target",
			req:  ProjectionRequest{TotalClasses: 4, AttendedClasses: 3, TargetPercentage: 75},
			want: ProjectionResult{CurrentPercentage: 75, AlreadyMet: true},
		},
		{
			name: "whole solution is exact",
			req:  ProjectionRequest{TotalClasses: 38, AttendedClasses: 28, TargetPercentage: 75},
			// x = (2850 - 2800) / 25 = 2
			want: ProjectionResult{CurrentPercentage: 28.0 / 38.0 * 100, AdditionalClassesNeeded: 2},
		},
		{
			name: "half attended, target 80",
			req:  ProjectionRequest{TotalClasses: 10, AttendedClasses: 5, TargetPercentage: 80},
			// x = (800 - 500) / 20 = 15
			want: ProjectionResult{CurrentPercentage: 50, AdditionalClassesNeeded: 15},
		},
		{
			name: "fraction below one class",
			req:  ProjectionRequest{TotalClasses: 3, AttendedClasses: 2, TargetPercentage: 70},
			// x = (210 - 200) / 30 = 0.33.. -> 1
			want: ProjectionResult{CurrentPercentage: 200.0 / 3, AdditionalClassesNeeded: 1},
		},
		{
			name: "no class held yet",
			req:  ProjectionRequest{TotalClasses: 0, AttendedClasses: 0, TargetPercentage: 75},
			// x = 0 / 25 = 0
			want: ProjectionResult{CurrentPercentage: 0},
		},
		{
			name: "full attendance, target 100",
			req:  ProjectionRequest{TotalClasses: 10, AttendedClasses: 10, TargetPercentage: 100},
			want: ProjectionResult{CurrentPercentage: 100, AlreadyMet: true},
		},
		{
			name: "target a hair above a whole solution",
			req:  ProjectionRequest{TotalClasses: 40, AttendedClasses: 28, TargetPercentage: 75.0000000001},
			// 36/48 is exactly 75, just short of the target
			want: ProjectionResult{CurrentPercentage: 70, AdditionalClassesNeeded: 9},
		},
		{
			name: "target just below 100",
			req:  ProjectionRequest{TotalClasses: 10, AttendedClasses: 9, TargetPercentage: 99},
			// x = (990 - 900) / 1 = 90
			want: ProjectionResult{CurrentPercentage: 90, AdditionalClassesNeeded: 90},
		},
		{
			name:    "more classes needed than can be counted",
			req:     ProjectionRequest{TotalClasses: 1 << 60, AttendedClasses: 0, TargetPercentage: 99.99},
			wantErr: "unreachable",
		},
		{
			name:    "target 100 after a miss",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: 5, TargetPercentage: 100},
			wantErr: "unreachable",
		},
		{
			name:    "target 100, nothing held",
			req:     ProjectionRequest{TargetPercentage: 100},
			wantErr: "unreachable",
		},
		{
			name:    "attended > total",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: 11, TargetPercentage: 75},
			wantErr: "validation", fields: []string{"attended_classes"},
		},
		{
			name:    "negative total",
			req:     ProjectionRequest{TotalClasses: -1, AttendedClasses: 0, TargetPercentage: 75},
			wantErr: "validation", fields: []string{"total_classes"},
		},
		{
			name:    "negative attended",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: -3, TargetPercentage: 75},
			wantErr: "validation", fields: []string{"attended_classes"},
		},
		{
			name:    "zero target",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: 3, TargetPercentage: 0},
			wantErr: "validation", fields: []string{"target_percentage"},
		},
		{
			name:    "negative target",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: 3, TargetPercentage: -5},
			wantErr: "validation", fields: []string{"target_percentage"},
		},
		{
			name:    "target over 100",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: 3, TargetPercentage: 100.1},
			wantErr: "validation", fields: []string{"target_percentage"},
		},
		{
			name:    "NaN target",
			req:     ProjectionRequest{TotalClasses: 10, AttendedClasses: 3, TargetPercentage: math.NaN()},
			wantErr: "validation", fields: []string{"target_percentage"},
		},
		{
			name:    "every field invalid",
			req:     ProjectionRequest{TotalClasses: -2, AttendedClasses: -1, TargetPercentage: 120},
			wantErr: "validation", fields: []string{"total_classes", "attended_classes", "target_percentage"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProjectRequiredClasses(tt.req)
			switch tt.wantErr {
			case "":
				require.NoError(t, err)
				assert.InDelta(t, tt.want.CurrentPercentage, got.CurrentPercentage, 1e-9)
				assert.Equal(t, tt.want.AlreadyMet, got.AlreadyMet)
				assert.Equal(t, tt.want.AdditionalClassesNeeded, got.AdditionalClassesNeeded)
			case "unreachable":
				require.Error(t, err)
				assert.True(t, IsUnreachable(err), "want *UnreachableTargetError, got %T", err)
				assert.Equal(t, ProjectionResult{}, got)
			case "validation":
				require.Error(t, err)
				vErr, ok := core.AsValidationError(err)
				require.True(t, ok, "want *core.ValidationError, got %T", err)
				assert.Len(t, vErr.Fields, len(tt.fields))
				for _, f := range tt.fields {
					assert.True(t, vErr.HasField(f), "missing field error %q in %v", f, vErr.Fields)
				}
				assert.Equal(t, ProjectionResult{}, got)
			}
		})
	}
}

func TestProjectRequiredClasses_ReachesTarget(t *testing.T) {
	// the projected count must reach the target, and one less must not
	for total := 1; total <= 60; total++ {
		for attended := 0; attended <= total; attended++ {
			for _, target := range []float64{50, 65, 70.0000000001, 75, 75.0000000001, 80, 85.5, 99, 99.99} {
				res, err := ProjectRequiredClasses(ProjectionRequest{TotalClasses: total, AttendedClasses: attended, TargetPercentage: target})
				require.NoError(t, err)
				if res.AlreadyMet {
					continue
				}
				n := res.AdditionalClassesNeeded
				after := percentage(attended+n, total+n)
				assert.GreaterOrEqualf(t, after, target, "total=%d attended=%d target=%v n=%d", total, attended, target, n)
				if n > 0 {
					before := percentage(attended+n-1, total+n-1)
					assert.Lessf(t, before, target, "total=%d attended=%d target=%v n=%d", total, attended, target, n)
				}
			}
		}
	}
}

func TestProjectRequiredClasses_Idempotent(t *testing.T) {
	req := ProjectionRequest{TotalClasses: 38, AttendedClasses: 28, TargetPercentage: 80}
	first, err1 := ProjectRequiredClasses(req)
	second, err2 := ProjectRequiredClasses(req)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestUnreachableTargetError_Error(t *testing.T) {
	_, err := ProjectRequiredClasses(ProjectionRequest{TargetPercentage: 100})
	require.Error(t, err)
	assert.Equal(t, "a 100% target can only be reported once already met (currently 0.0%)", err.Error())

	_, err = ProjectRequiredClasses(ProjectionRequest{TotalClasses: 10, AttendedClasses: 5, TargetPercentage: 100})
	require.Error(t, err)
	assert.Equal(t, "a 100% target can only be reported once already met (currently 50.0%)", err.Error())

	_, err = ProjectRequiredClasses(ProjectionRequest{TotalClasses: 1 << 60, TargetPercentage: 99.99})
	require.Error(t, err)
	assert.Equal(t, "target of 99.99% is out of reach from 0.0%: more classes would be needed than can be counted", err.Error())
}

func TestIsUnreachable_Wrapped(t *testing.T) {
	_, err := ProjectRequiredClasses(ProjectionRequest{TotalClasses: 4, AttendedClasses: 3, TargetPercentage: 100})
	require.Error(t, err)
	wrapped := errors.Wrap(err, "projecting classes")
	assert.True(t, IsUnreachable(wrapped))
	assert.False(t, IsUnreachable(errors.New("lol")))
}
