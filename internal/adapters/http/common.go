package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/domain/entities"
)

// identityKey is the echo context key under which the auth middleware
// stores the resolved caller identity.
const identityKey = "identity"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func identityFromContext(c echo.Context) (entities.Identity, error) {
	identity, ok := c.Get(identityKey).(entities.Identity)
	if !ok {
		return entities.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing identity context")
	}
	return identity, nil
}

// domainError translates service errors into HTTP responses. Upstream
// failures surface as a generic 500 without internal detail.
func domainError(err error) error {
	var ve *entities.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, entities.ErrAssigneeNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Assignee user not found"})
	case errors.Is(err, entities.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
	case errors.Is(err, entities.ErrMembersCannotReassign):
		return echo.NewHTTPError(http.StatusForbidden, ErrorResponse{Error: "Members can only assign tasks to themselves"})
	case errors.Is(err, entities.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, ErrorResponse{Error: "Not authorized"})
	case errors.Is(err, entities.ErrStandupNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Error: "Standup not found"})
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
	case errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, entities.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Error: "Project not found"})
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid id"})
	}
	return id, nil
}

// parseDateParam accepts 2006-01-02 or RFC3339 query values. Date-only
// values name a calendar day in loc, so they are parsed there; otherwise
// a western timezone would resolve the day window to the previous day.
func parseDateParam(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid date"})
	}
	return &t, nil
}

func parseLimitParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
	}
	return limit, nil
}

func parseUUIDParam(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid user id"})
	}
	return &id, nil
}
