package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/infrastructure/logger"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
	logger          *logger.Logger
}

func NewReminderHandler(reminderService *services.ReminderService, logger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger.WithComponent("reminder_handler"),
	}
}

// Run triggers a reminder sweep on demand. Leads and admins only. The
// same sweep also runs on the configured schedule.
func (h *ReminderHandler) Run(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	result, err := h.reminderService.RunAs(c.Request().Context(), identity)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, result)
}
