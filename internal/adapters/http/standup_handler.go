package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

type StandupHandler struct {
	standupService *services.StandupService
	loc            *time.Location
	logger         *logger.Logger
}

// NewStandupHandler creates the standup handler. loc is the reference
// timezone for date query parameters.
func NewStandupHandler(standupService *services.StandupService, loc *time.Location, logger *logger.Logger) *StandupHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StandupHandler{
		standupService: standupService,
		loc:            loc,
		logger:         logger.WithComponent("standup_handler"),
	}
}

// Submit records today's standup for the caller. Submitting twice on
// the same day overwrites the earlier entry, so the response status
// distinguishes creation from replacement.
func (h *StandupHandler) Submit(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req ports.SubmitStandupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	standup, created, err := h.standupService.Submit(c.Request().Context(), identity, req)
	if err != nil {
		return domainError(err)
	}

	if created {
		return c.JSON(http.StatusCreated, standup)
	}
	return c.JSON(http.StatusOK, standup)
}

// Mine returns the caller's standup history, newest first.
func (h *StandupHandler) Mine(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	start, err := parseDateParam(c.QueryParam("start_date"), h.loc)
	if err != nil {
		return err
	}
	end, err := parseDateParam(c.QueryParam("end_date"), h.loc)
	if err != nil {
		return err
	}
	limit, err := parseLimitParam(c.QueryParam("limit"), 0)
	if err != nil {
		return err
	}

	standups, err := h.standupService.GetMine(c.Request().Context(), identity, ports.StandupHistoryFilter{
		StartDate: start,
		EndDate:   end,
		Limit:     limit,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, standups)
}

// Today returns the caller's standup for the current day, or null when
// nothing has been submitted yet.
func (h *StandupHandler) Today(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	standup, err := h.standupService.GetToday(c.Request().Context(), identity)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, standup)
}

// Team returns a day's standups across users. Leads and admins only.
func (h *StandupHandler) Team(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	date, err := parseDateParam(c.QueryParam("date"), h.loc)
	if err != nil {
		return err
	}
	userID, err := parseUUIDParam(c.QueryParam("user_id"))
	if err != nil {
		return err
	}

	standups, err := h.standupService.GetTeam(c.Request().Context(), identity, ports.TeamStandupFilter{
		Date:    date,
		Team:    c.QueryParam("team"),
		UserID:  userID,
		Project: c.QueryParam("project"),
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, standups)
}

func (h *StandupHandler) Get(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	standup, err := h.standupService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, standup)
}

// Update edits an existing standup. Only the owner may edit.
func (h *StandupHandler) Update(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateStandupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	standup, err := h.standupService.Update(c.Request().Context(), identity, id, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, standup)
}
