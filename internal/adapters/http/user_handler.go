package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/infrastructure/logger"
)

type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.WithComponent("user_handler"),
	}
}

// List returns every profile. Leads and admins only.
func (h *UserHandler) List(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), identity)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, users)
}

// ListTeam returns profiles filtered by team label. An absent team
// query matches all users.
func (h *UserHandler) ListTeam(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	users, err := h.userService.ListByTeam(c.Request().Context(), identity, c.QueryParam("team"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, users)
}
