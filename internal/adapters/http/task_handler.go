package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

type TaskHandler struct {
	taskService *services.TaskService
	loc         *time.Location
	logger      *logger.Logger
}

// NewTaskHandler creates the task handler. loc is the reference timezone
// for date query parameters.
func NewTaskHandler(taskService *services.TaskService, loc *time.Location, logger *logger.Logger) *TaskHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskHandler{
		taskService: taskService,
		loc:         loc,
		logger:      logger.WithComponent("task_handler"),
	}
}

// Create records a new task. Members are always the assignee of tasks
// they create; leads and admins may assign anyone.
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	task, err := h.taskService.Create(c.Request().Context(), identity, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// Mine lists tasks assigned to the caller.
func (h *TaskHandler) Mine(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	date, err := parseDateParam(c.QueryParam("date"), h.loc)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListMine(c.Request().Context(), identity, ports.MyTasksFilter{
		Status:  c.QueryParam("status"),
		Project: c.QueryParam("project"),
		Date:    date,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// Team lists tasks across users. Leads and admins only.
func (h *TaskHandler) Team(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	date, err := parseDateParam(c.QueryParam("date"), h.loc)
	if err != nil {
		return err
	}
	assignee, err := parseUUIDParam(c.QueryParam("assignee_id"))
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTeam(c.Request().Context(), identity, ports.TeamTasksFilter{
		Status:   c.QueryParam("status"),
		Project:  c.QueryParam("project"),
		Assignee: assignee,
		Date:     date,
		Team:     c.QueryParam("team"),
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// Update patches a task. Assignees edit their own tasks; leads and
// admins edit any task and may reassign.
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	task, err := h.taskService.Update(c.Request().Context(), identity, id, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}
