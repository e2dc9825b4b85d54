package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

func newTaskService(taskRepo *mockTaskRepo, userRepo *mockUserRepo) *TaskService {
	return NewTaskService(taskRepo, userRepo, time.UTC, logger.Nop())
}

// echoTaskRepo stores the created or updated task and returns it on GetByID.
func echoTaskRepo() *mockTaskRepo {
	var stored *entities.Task
	repo := &mockTaskRepo{}
	repo.createFn = func(ctx context.Context, task *entities.Task) error {
		stored = task
		return nil
	}
	repo.updateFn = func(ctx context.Context, task *entities.Task) error {
		stored = task
		return nil
	}
	repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
		if stored == nil {
			return nil, entities.ErrTaskNotFound
		}
		return stored, nil
	}
	return repo
}

func TestTaskCreate_MemberAlwaysSelfAssigned(t *testing.T) {
	member := memberIdentity()
	someoneElse := uuid.New()

	repo := echoTaskRepo()
	svc := newTaskService(repo, &mockUserRepo{})

	task, err := svc.Create(context.Background(), member, ports.CreateTaskRequest{
		Title:    "Write release notes",
		Project:  "atlas",
		Assignee: &someoneElse,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.AssigneeID != member.ID {
		t.Errorf("member-created task assigned to %s, want the member %s", task.AssigneeID, member.ID)
	}
	if task.CreatedByID != member.ID {
		t.Errorf("creator recorded as %s, want %s", task.CreatedByID, member.ID)
	}
}

func TestTaskCreate_LeadAssignsOthers(t *testing.T) {
	lead := leadIdentity()
	assignee := uuid.New()

	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.User, error) {
			if id == assignee {
				return &entities.User{ID: id, Name: "Carol"}, nil
			}
			return nil, entities.ErrUserNotFound
		},
	}
	svc := newTaskService(echoTaskRepo(), userRepo)

	task, err := svc.Create(context.Background(), lead, ports.CreateTaskRequest{
		Title:    "Investigate slow query",
		Project:  "atlas",
		Assignee: &assignee,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.AssigneeID != assignee {
		t.Errorf("task assigned to %s, want %s", task.AssigneeID, assignee)
	}
}

func TestTaskCreate_UnknownAssigneeRejected(t *testing.T) {
	lead := leadIdentity()
	ghost := uuid.New()

	svc := newTaskService(echoTaskRepo(), &mockUserRepo{})

	_, err := svc.Create(context.Background(), lead, ports.CreateTaskRequest{
		Title:    "Orphan work",
		Project:  "atlas",
		Assignee: &ghost,
	})
	if !errors.Is(err, entities.ErrAssigneeNotFound) {
		t.Errorf("expected ErrAssigneeNotFound, got %v", err)
	}
}

func TestTaskCreate_DefaultsAndValidation(t *testing.T) {
	member := memberIdentity()
	svc := newTaskService(echoTaskRepo(), &mockUserRepo{})

	task, err := svc.Create(context.Background(), member, ports.CreateTaskRequest{
		Title:   "Defaults",
		Project: "atlas",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.Status != entities.TaskStatusTodo {
		t.Errorf("default status = %q, want todo", task.Status)
	}
	if task.Priority != entities.PriorityMedium {
		t.Errorf("default priority = %q, want medium", task.Priority)
	}

	_, err = svc.Create(context.Background(), member, ports.CreateTaskRequest{
		Title:   "Bad status",
		Project: "atlas",
		Status:  "paused",
	})
	var ve *entities.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("invalid status must fail validation, got %v", err)
	}

	_, err = svc.Create(context.Background(), member, ports.CreateTaskRequest{Project: "atlas"})
	if !errors.As(err, &ve) {
		t.Errorf("missing title must fail validation, got %v", err)
	}
}

func TestTaskUpdate_MemberCannotReassign(t *testing.T) {
	member := memberIdentity()
	other := uuid.New()

	existing := &entities.Task{
		ID:          uuid.New(),
		Title:       "Mine",
		Project:     "atlas",
		AssigneeID:  member.ID,
		CreatedByID: member.ID,
	}
	repo := &mockTaskRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
			return existing, nil
		},
	}
	svc := newTaskService(repo, &mockUserRepo{})

	_, err := svc.Update(context.Background(), member, existing.ID, ports.UpdateTaskRequest{Assignee: &other})
	if !errors.Is(err, entities.ErrMembersCannotReassign) {
		t.Errorf("expected ErrMembersCannotReassign, got %v", err)
	}
}

func TestTaskUpdate_LeadReassigns(t *testing.T) {
	lead := leadIdentity()
	member := memberIdentity()
	newAssignee := uuid.New()

	existing := &entities.Task{
		ID:          uuid.New(),
		Title:       "Handover",
		Project:     "atlas",
		AssigneeID:  member.ID,
		CreatedByID: member.ID,
	}
	repo := echoTaskRepo()
	repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
		return existing, nil
	}
	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: id}, nil
		},
	}
	svc := newTaskService(repo, userRepo)

	task, err := svc.Update(context.Background(), lead, existing.ID, ports.UpdateTaskRequest{Assignee: &newAssignee})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if task.AssigneeID != newAssignee {
		t.Errorf("task assigned to %s, want %s", task.AssigneeID, newAssignee)
	}
}

func TestTaskUpdate_EmptyDueDateClears(t *testing.T) {
	member := memberIdentity()
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	existing := &entities.Task{
		ID:          uuid.New(),
		Title:       "Dated",
		Project:     "atlas",
		AssigneeID:  member.ID,
		CreatedByID: member.ID,
		DueDate:     &due,
	}
	repo := echoTaskRepo()
	repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
		return existing, nil
	}
	svc := newTaskService(repo, &mockUserRepo{})

	clear := ""
	task, err := svc.Update(context.Background(), member, existing.ID, ports.UpdateTaskRequest{DueDate: &clear})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("empty due date must clear the field, got %v", task.DueDate)
	}

	newDue := "2025-05-01"
	task, err = svc.Update(context.Background(), member, existing.ID, ports.UpdateTaskRequest{DueDate: &newDue})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != newDue {
		t.Errorf("due date not applied, got %v", task.DueDate)
	}

	bad := "next tuesday"
	_, err = svc.Update(context.Background(), member, existing.ID, ports.UpdateTaskRequest{DueDate: &bad})
	var ve *entities.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("unparseable due date must fail validation, got %v", err)
	}
}

func TestTaskUpdate_UnrelatedMemberForbidden(t *testing.T) {
	owner := memberIdentity()
	stranger := memberIdentity()

	existing := &entities.Task{
		ID:          uuid.New(),
		AssigneeID:  owner.ID,
		CreatedByID: owner.ID,
	}
	repo := &mockTaskRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
			return existing, nil
		},
	}
	svc := newTaskService(repo, &mockUserRepo{})

	status := "done"
	_, err := svc.Update(context.Background(), stranger, existing.ID, ports.UpdateTaskRequest{Status: &status})
	if !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("unrelated member update must be forbidden, got %v", err)
	}
}

func TestTaskListTeam_RequiresLeadOrAdmin(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{}, &mockUserRepo{})

	_, err := svc.ListTeam(context.Background(), memberIdentity(), ports.TeamTasksFilter{})
	if !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("member must not read the team task view, got %v", err)
	}
}

func TestTaskListTeam_FiltersByAssigneeTeam(t *testing.T) {
	lead := leadIdentity()

	tasks := []*entities.Task{
		{ID: uuid.New(), Assignee: &entities.Profile{Team: "platform"}},
		{ID: uuid.New(), Assignee: &entities.Profile{Team: "mobile"}},
		{ID: uuid.New(), Assignee: nil},
	}
	repo := &mockTaskRepo{
		listFn: func(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
			return tasks, nil
		},
	}
	svc := newTaskService(repo, &mockUserRepo{})

	got, err := svc.ListTeam(context.Background(), lead, ports.TeamTasksFilter{Team: "platform"})
	if err != nil {
		t.Fatalf("ListTeam returned error: %v", err)
	}
	if len(got) != 1 || got[0].Assignee.Team != "platform" {
		t.Errorf("team filter returned %d tasks", len(got))
	}
}

func TestTaskListMine_ScopesToCaller(t *testing.T) {
	member := memberIdentity()

	var gotFilter ports.TaskFilter
	repo := &mockTaskRepo{
		listFn: func(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newTaskService(repo, &mockUserRepo{})

	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if _, err := svc.ListMine(context.Background(), member, ports.MyTasksFilter{Status: "todo", Date: &date}); err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if gotFilter.Assignee == nil || *gotFilter.Assignee != member.ID {
		t.Error("ListMine must pin the assignee filter to the caller")
	}
	if gotFilter.Status == nil || *gotFilter.Status != entities.TaskStatusTodo {
		t.Error("status filter not applied")
	}
	if gotFilter.DueStart == nil || gotFilter.DueEnd == nil {
		t.Fatal("date filter must expand to a due-date window")
	}
	if !gotFilter.DueStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window start = %v", gotFilter.DueStart)
	}
	if !gotFilter.DueEnd.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window end = %v", gotFilter.DueEnd)
	}
}

func TestTaskGetByID_CreatorKeepsAccess(t *testing.T) {
	creator := memberIdentity()
	assignee := uuid.New()

	task := &entities.Task{
		ID:          uuid.New(),
		AssigneeID:  assignee,
		CreatedByID: creator.ID,
	}
	repo := &mockTaskRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
			return task, nil
		},
	}
	svc := newTaskService(repo, &mockUserRepo{})

	if _, err := svc.GetByID(context.Background(), creator, task.ID); err != nil {
		t.Errorf("creator read failed after reassignment: %v", err)
	}
}
