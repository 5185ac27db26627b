package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/theme"
)

type themeApi struct {
	store core.KVStore
}

func registerThemeAPI(g *echo.Group, store core.KVStore) {
	api := themeApi{store: store}

	g.GET("", api.list)
	g.GET("/current", api.current)
	g.PUT("/current", api.apply)
}

type (
	ThemeResponse struct {
		theme.Theme
		ColorScheme string `json:"color_scheme"`
	}

	ApplyThemeRequest struct {
		ID string `json:"id"`
	}
)

func newThemeResponse(t theme.Theme) ThemeResponse {
	return ThemeResponse{Theme: t, ColorScheme: t.ColorScheme()}
}

// manager loads the theme chosen by the context user.
func (api *themeApi) manager(ctx echo.Context) (*theme.Manager, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting context user")
	}
	m := theme.NewManager(api.store, theme.SelectedThemeKey+":"+usr.RegNo)
	if _, err := m.Load(ctx.Request().Context()); err != nil {
		return nil, errors.Wrap(err, "loading theme")
	}
	return m, nil
}

func (api *themeApi) list(ctx echo.Context) error {
	themes := theme.Catalog()
	res := make([]ThemeResponse, 0, len(themes))
	for _, t := range themes {
		res = append(res, newThemeResponse(t))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *themeApi) current(ctx echo.Context) error {
	m, err := api.manager(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newThemeResponse(m.Current()))
}

func (api *themeApi) apply(ctx echo.Context) error {
	var data ApplyThemeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ApplyThemeRequest")
	}
	if data.ID == "" {
		return newFieldError("id", "this field is required")
	}

	m, err := api.manager(ctx)
	if err != nil {
		return err
	}
	t, err := m.Apply(ctx.Request().Context(), data.ID)
	if err != nil {
		if errors.Cause(err) == theme.ErrThemeNotFound {
			return newFieldError("id", err.Error())
		}
		return errors.Wrap(err, "applying theme")
	}
	return ctx.JSON(http.StatusOK, newThemeResponse(t))
}

func newFieldError(field, msg string) error {
	return core.NewValidationError(nil, core.FieldError{Field: field, Error: msg})
}
