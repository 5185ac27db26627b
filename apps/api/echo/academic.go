package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core/academic"
)

const termParam = "term"

type academicApi struct {
	src academic.Source
}

func registerAcademicAPI(g *echo.Group, src academic.Source) {
	api := academicApi{src: src}

	g.GET("", api.view)
	g.GET("/terms", api.terms)
}

// bindTerm reads ?term=, "" meaning every term.
func bindTerm(ctx echo.Context) string {
	return strings.TrimSpace(ctx.QueryParam(termParam))
}

func (api *academicApi) dashboard(ctx echo.Context) (academic.Dashboard, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return academic.Dashboard{}, errors.Wrap(err, "getting context user")
	}
	d, err := api.src.Dashboard(ctx.Request().Context(), usr.RegNo)
	if err != nil {
		return academic.Dashboard{}, errors.Wrap(err, "loading academic dashboard")
	}
	return d, nil
}

func (api *academicApi) view(ctx echo.Context) error {
	d, err := api.dashboard(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, academic.View(d, bindTerm(ctx)))
}

func (api *academicApi) terms(ctx echo.Context) error {
	d, err := api.dashboard(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, academic.DistinctTerms(d.Grades))
}
