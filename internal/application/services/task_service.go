package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
	"github.com/dailysync/core/internal/timeutil"
)

// TaskService enforces assignment rules and ownership/role authorization
// for tasks.
type TaskService struct {
	taskRepo ports.TaskRepository
	userRepo ports.UserRepository
	logger   *logger.Logger
	loc      *time.Location
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo ports.TaskRepository, userRepo ports.UserRepository, loc *time.Location, logger *logger.Logger) *TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger,
		loc:      loc,
	}
}

// Create creates a new task. Members always become the assignee of tasks
// they create, regardless of any supplied assignee.
func (s *TaskService) Create(ctx context.Context, identity entities.Identity, req ports.CreateTaskRequest) (*entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	project := strings.TrimSpace(req.Project)

	if title == "" {
		return nil, entities.NewValidationError("title", "is required")
	}
	if project == "" {
		return nil, entities.NewValidationError("project", "is required")
	}

	status := entities.TaskStatusTodo
	if req.Status != "" {
		status = entities.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, entities.NewValidationError("status", "invalid status")
		}
	}

	priority := entities.PriorityMedium
	if req.Priority != "" {
		priority = entities.TaskPriority(req.Priority)
		if !priority.IsValid() {
			return nil, entities.NewValidationError("priority", "invalid priority")
		}
	}

	assigneeID := identity.ID
	switch {
	case identity.Role == entities.RoleMember:
		// Members can only assign tasks to themselves; a supplied
		// assignee is silently replaced with the caller.
	case req.Assignee != nil:
		if _, err := s.userRepo.GetByID(ctx, *req.Assignee); err != nil {
			if errors.Is(err, entities.ErrUserNotFound) {
				return nil, entities.ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("resolve assignee: %w", err)
		}
		assigneeID = *req.Assignee
	}

	task := &entities.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		Project:     project,
		AssigneeID:  assigneeID,
		CreatedByID: identity.ID,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "assignee_id", assigneeID, "created_by", identity.ID)

	created, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("load created task: %w", err)
	}
	return created, nil
}

// ListMine returns tasks assigned to the caller, sorted by due date
// ascending (absent due dates last), then creation time descending.
func (s *TaskService) ListMine(ctx context.Context, identity entities.Identity, filter ports.MyTasksFilter) ([]*entities.Task, error) {
	repoFilter := ports.TaskFilter{Assignee: &identity.ID}

	if err := applyTaskFilters(&repoFilter, filter.Status, filter.Project, filter.Date, s.loc); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("list my tasks: %w", err)
	}

	return tasks, nil
}

// ListTeam returns tasks across all users for lead/admin callers. The
// team filter is applied in memory against the joined assignee profile.
func (s *TaskService) ListTeam(ctx context.Context, identity entities.Identity, filter ports.TeamTasksFilter) ([]*entities.Task, error) {
	if !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	repoFilter := ports.TaskFilter{Assignee: filter.Assignee}

	if err := applyTaskFilters(&repoFilter, filter.Status, filter.Project, filter.Date, s.loc); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("list team tasks: %w", err)
	}

	if filter.Team == "" {
		return tasks, nil
	}

	filtered := make([]*entities.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Assignee != nil && task.Assignee.Team == filter.Team {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

// GetByID returns one task. The caller must be the assignee, the creator,
// or hold the lead or admin role.
func (s *TaskService) GetByID(ctx context.Context, identity entities.Identity, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(identity.ID) && !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	return task, nil
}

// Update applies a partial patch to a task. Ownership follows GetByID; a
// member may never move the assignee off themselves, even on tasks they
// created. An explicit empty due date clears it.
func (s *TaskService) Update(ctx context.Context, identity entities.Identity, id uuid.UUID, patch ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(identity.ID) && !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, entities.NewValidationError("title", "must not be empty")
		}
		task.Title = trimmed
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Project != nil {
		trimmed := strings.TrimSpace(*patch.Project)
		if trimmed == "" {
			return nil, entities.NewValidationError("project", "must not be empty")
		}
		task.Project = trimmed
	}
	if patch.Status != nil {
		status := entities.TaskStatus(*patch.Status)
		if !status.IsValid() {
			return nil, entities.NewValidationError("status", "invalid status")
		}
		task.Status = status
	}
	if patch.Priority != nil {
		priority := entities.TaskPriority(*patch.Priority)
		if !priority.IsValid() {
			return nil, entities.NewValidationError("priority", "invalid priority")
		}
		task.Priority = priority
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := parseDate(*patch.DueDate)
			if err != nil {
				return nil, entities.NewValidationError("due_date", "invalid date")
			}
			task.DueDate = &due
		}
	}

	if patch.Assignee != nil {
		if identity.Role == entities.RoleMember && *patch.Assignee != identity.ID {
			return nil, entities.ErrMembersCannotReassign
		}
		if _, err := s.userRepo.GetByID(ctx, *patch.Assignee); err != nil {
			if errors.Is(err, entities.ErrUserNotFound) {
				return nil, entities.ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("resolve assignee: %w", err)
		}
		task.AssigneeID = *patch.Assignee
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "user_id", identity.ID)

	updated, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("load updated task: %w", err)
	}
	return updated, nil
}

// applyTaskFilters validates the shared status/project/date filters and
// writes them into the repository filter.
func applyTaskFilters(repoFilter *ports.TaskFilter, status, project string, date *time.Time, loc *time.Location) error {
	if status != "" {
		typed := entities.TaskStatus(status)
		if !typed.IsValid() {
			return entities.NewValidationError("status", "invalid status")
		}
		repoFilter.Status = &typed
	}
	if project != "" {
		repoFilter.Project = project
	}
	if date != nil {
		start, end := timeutil.DayWindow(*date, loc)
		repoFilter.DueStart = &start
		repoFilter.DueEnd = &end
	}
	return nil
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
