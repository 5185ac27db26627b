// Package attendance computes attendance percentages, risk bands and projections.
// Every function is pure: no clock, no storage, no shared state.
package attendance

import (
	"math"

	"github.com/trezcool/campuslink/core"
)

// maxCountableClasses bounds the class counts a projection can return: past 2^53 a float64 no longer
// holds every whole number.
const maxCountableClasses = 1 << 53

// OverallPercentage is the attended/total ratio summed over all courses, as a percentage.
func OverallPercentage(courses []CourseAttendance) float64 {
	var attended, total int
	for _, c := range courses {
		attended += c.AttendedClasses
		total += c.TotalClasses
	}
	return percentage(attended, total)
}

// Classify maps a percentage to its Status band.
func Classify(pct float64) Status {
	switch {
	case pct >= SafeThreshold:
		return Safe
	case pct >= WarningThreshold:
		return Warning
	default:
		return Critical
	}
}

// ProjectRequiredClasses solves (attended + x) / (total + x) * 100 >= target for the smallest whole x,
// assuming every future class is attended.
//
// Malformed requests fail with a *core.ValidationError naming each invalid field.
// A target of 100% that is not already met fails with an *UnreachableTargetError, as does a target
// needing more classes than can be counted.
func ProjectRequiredClasses(req ProjectionRequest) (ProjectionResult, error) {
	if err := validateProjection(req); err != nil {
		return ProjectionResult{}, err
	}

	cur := percentage(req.AttendedClasses, req.TotalClasses)
	if cur >= req.TargetPercentage {
		return ProjectionResult{CurrentPercentage: cur, AlreadyMet: true}, nil
	}
	if req.TargetPercentage >= 100 {
		return ProjectionResult{}, &UnreachableTargetError{TargetPercentage: req.TargetPercentage, CurrentPercentage: cur}
	}

	target := req.TargetPercentage
	x := (target*float64(req.TotalClasses) - 100*float64(req.AttendedClasses)) / (100 - target)
	if x+float64(req.TotalClasses) > maxCountableClasses {
		return ProjectionResult{}, &UnreachableTargetError{TargetPercentage: target, CurrentPercentage: cur}
	}

	needed := int(math.Ceil(x))
	if needed < 0 {
		needed = 0
	}
	// x carries float noise: settle the count against the percentage actually reached
	if needed > 0 && reaches(req, needed-1) {
		needed--
	} else if req.TotalClasses+needed > 0 && !reaches(req, needed) {
		needed++
	}
	return ProjectionResult{CurrentPercentage: cur, AdditionalClassesNeeded: needed}, nil
}

// reaches reports whether attending the next n classes brings the percentage to the target.
func reaches(req ProjectionRequest, n int) bool {
	return percentage(req.AttendedClasses+n, req.TotalClasses+n) >= req.TargetPercentage
}

func validateProjection(req ProjectionRequest) error {
	var flds []core.FieldError
	if req.TotalClasses < 0 {
		flds = append(flds, core.FieldError{Field: "total_classes", Error: "must not be negative"})
	}
	if req.AttendedClasses < 0 {
		flds = append(flds, core.FieldError{Field: "attended_classes", Error: "must not be negative"})
	} else if req.TotalClasses >= 0 && req.AttendedClasses > req.TotalClasses {
		flds = append(flds, core.FieldError{Field: "attended_classes", Error: "must not exceed total_classes"})
	}
	if t := req.TargetPercentage; math.IsNaN(t) || t <= 0 || t > 100 {
		flds = append(flds, core.FieldError{Field: "target_percentage", Error: "must be greater than 0 and at most 100"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}
