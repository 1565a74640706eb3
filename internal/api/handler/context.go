package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fwedwicc/rebyuwer-app/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// missing user id means the middleware did not run on this route, which is
// a wiring error; fail closed with 401 rather than proceed unscoped.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}
