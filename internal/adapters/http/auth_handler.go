package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger.WithComponent("auth_handler"),
	}
}

// Register creates an account and returns a signed token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.WithError(err).Warn("Registration failed")
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.LogSecurityEvent("login_failed", "", c.RealIP(), map[string]interface{}{"email": req.Email})
		return domainError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Me returns the profile backing the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.Me(c.Request().Context(), identity.ID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, profile)
}
