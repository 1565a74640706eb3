package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fwedwicc/rebyuwer-app/internal/api/metrics"
	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
)

// Context keys under which the verified identity is stored.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth verifies the bearer token and injects the identity into context.
// The 401 body distinguishes an expired token from an invalid one; the
// client uses that to show a "session expired" notice instead of a
// generic failure.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token invalid")
			}

			c.Set(CtxUserID, identity.UserID)
			c.Set(CtxRole, identity.Role)

			return next(c)
		}
	}
}
