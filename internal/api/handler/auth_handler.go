package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fwedwicc/rebyuwer-app/internal/api/metrics"
	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
	"github.com/fwedwicc/rebyuwer-app/internal/core/service"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account and returns a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		case errors.Is(err, domain.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "all fields are required")
		default:
			// Password policy errors carry the exact rule that failed.
			if isPolicyError(err) {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return err
		}
	}

	metrics.RegistrationsTotal.WithLabelValues(result.User.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, Role: result.User.Role, User: result.User})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "invalid credentials")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		case errors.Is(err, domain.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "all fields are required")
		default:
			return err
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, Role: result.User.Role, User: result.User})
}

// isPolicyError reports whether err is one of the password policy errors,
// which are safe to surface verbatim.
func isPolicyError(err error) bool {
	for _, policyErr := range []error{
		service.ErrPasswordMismatch,
		service.ErrPasswordTooShort,
		service.ErrPasswordUppercase,
		service.ErrPasswordDigit,
		service.ErrPasswordSymbol,
	} {
		if errors.Is(err, policyErr) {
			return true
		}
	}
	return false
}

// Logout acknowledges the client discarding its token. Tokens are
// self-contained and not revocable server-side, so there is nothing to
// invalidate here.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "logout successful"})
}
