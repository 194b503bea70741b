// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "conduit/internal/delivery/context"
	"conduit/internal/delivery/http/response"
	"conduit/internal/usecase"
)

// Version is the service version reported by the version endpoint.
const Version = "v0.0.1"

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req usecase.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Register(c.Request().Context(), &req.User)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, out)
}

// Login handles the login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req usecase.LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Login(c.Request().Context(), &req.User)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, out)
}

// GetCurrent handles the request for the account behind the bearer token.
func (h *UserHandler) GetCurrent(c echo.Context) error {
	token := deliverycontext.GetBearerToken(c)

	out, err := h.uc.GetCurrent(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, out)
}

// Update handles the partial profile update request.
func (h *UserHandler) Update(c echo.Context) error {
	token := deliverycontext.GetBearerToken(c)

	var req usecase.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Update(c.Request().Context(), token, &req.User)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, out)
}

// GetVersion reports the service version.
func GetVersion(c echo.Context) error {
	return c.String(http.StatusOK, Version)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
