package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// sessionMiddleware resolves the JWT's session to its user. A logged out session is unauthorized
// even when the token has not expired yet.
func (a *authenticator) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		if claims.Id == "" {
			return errUnauthorized
		}

		sess := a.session(claims.Id)
		usr, ok, err := sess.CurrentUser(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "loading session")
		}
		if !ok || usr.RegNo != claims.RegNo {
			return errUnauthorized
		}

		ctx.Set(contextSessionKey, sess)
		ctx.Set(contextUserKey, usr)
		return next(ctx)
	}
}
