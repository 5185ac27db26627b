package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core/attendance"
)

type attendanceApi struct {
	src      attendance.Source
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, src attendance.Source, validate *validator.Validate) {
	api := attendanceApi{src: src, validate: validate}

	g.GET("", api.list)
	g.GET("/analytics", api.analytics)
	g.POST("/projection", api.project)
}

type (
	AttendanceResponse struct {
		OverallPercentage float64                    `json:"overall_percentage"`
		OverallStatus     attendance.Status          `json:"overall_status"`
		Courses           []attendance.CourseSummary `json:"courses"`
	}

	// ProjectionRequest is the calculator form. Pointers tell a missing field from a zero.
	ProjectionRequest struct {
		TotalClasses     *int     `json:"total_classes" validate:"required,min=0"`
		AttendedClasses  *int     `json:"attended_classes" validate:"required,min=0,ltefield=TotalClasses"`
		TargetPercentage *float64 `json:"target_percentage" validate:"required,percentage"`
	}
)

// Validate checks the form shape; the engine still performs its own checks.
func (pr *ProjectionRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(pr)
}

func (pr ProjectionRequest) toCore() attendance.ProjectionRequest {
	return attendance.ProjectionRequest{
		TotalClasses:     *pr.TotalClasses,
		AttendedClasses:  *pr.AttendedClasses,
		TargetPercentage: *pr.TargetPercentage,
	}
}

func (api *attendanceApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	courses, err := api.src.Attendance(ctx.Request().Context(), usr.RegNo)
	if err != nil {
		return errors.Wrap(err, "loading attendance")
	}

	summaries := make([]attendance.CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, attendance.Summarize(c))
	}
	overall := attendance.OverallPercentage(courses)
	return ctx.JSON(http.StatusOK, AttendanceResponse{
		OverallPercentage: overall,
		OverallStatus:     attendance.Classify(overall),
		Courses:           summaries,
	})
}

func (api *attendanceApi) analytics(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	reqCtx := ctx.Request().Context()

	courses, err := api.src.Attendance(reqCtx, usr.RegNo)
	if err != nil {
		return errors.Wrap(err, "loading attendance")
	}
	trend, err := api.src.Trend(reqCtx, usr.RegNo)
	if err != nil {
		return errors.Wrap(err, "loading attendance trend")
	}
	return ctx.JSON(http.StatusOK, attendance.Analyze(courses, trend))
}

func (api *attendanceApi) project(ctx echo.Context) error {
	var data ProjectionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProjectionRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := attendance.ProjectRequiredClasses(data.toCore())
	if err != nil {
		return errors.Wrap(err, "projecting required classes")
	}
	return ctx.JSON(http.StatusOK, res)
}
