package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/ports"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, user *entities.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn func(ctx context.Context, email string) (*entities.User, error)
	listFn       func(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, entities.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, entities.ErrUserNotFound
}

func (m *mockUserRepo) List(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

type mockStandupRepo struct {
	createFn              func(ctx context.Context, standup *entities.Standup) error
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*entities.Standup, error)
	getByUserAndWindowFn  func(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entities.Standup, error)
	updateFn              func(ctx context.Context, standup *entities.Standup) error
	listByUserFn          func(ctx context.Context, userID uuid.UUID, filter ports.StandupHistoryFilter) ([]*entities.Standup, error)
	listByWindowFn        func(ctx context.Context, start, end time.Time) ([]*entities.Standup, error)
	existsCreatedInWindow func(ctx context.Context, userID uuid.UUID, start, end time.Time) (bool, error)
}

func (m *mockStandupRepo) Create(ctx context.Context, standup *entities.Standup) error {
	if m.createFn != nil {
		return m.createFn(ctx, standup)
	}
	return nil
}

func (m *mockStandupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, entities.ErrStandupNotFound
}

func (m *mockStandupRepo) GetByUserAndWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entities.Standup, error) {
	if m.getByUserAndWindowFn != nil {
		return m.getByUserAndWindowFn(ctx, userID, start, end)
	}
	return nil, entities.ErrStandupNotFound
}

func (m *mockStandupRepo) Update(ctx context.Context, standup *entities.Standup) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, standup)
	}
	return nil
}

func (m *mockStandupRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter ports.StandupHistoryFilter) ([]*entities.Standup, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockStandupRepo) ListByWindow(ctx context.Context, start, end time.Time) ([]*entities.Standup, error) {
	if m.listByWindowFn != nil {
		return m.listByWindowFn(ctx, start, end)
	}
	return nil, nil
}

func (m *mockStandupRepo) ExistsCreatedInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (bool, error) {
	if m.existsCreatedInWindow != nil {
		return m.existsCreatedInWindow(ctx, userID, start, end)
	}
	return false, nil
}

type mockTaskRepo struct {
	createFn  func(ctx context.Context, task *entities.Task) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	updateFn  func(ctx context.Context, task *entities.Task) error
	listFn    func(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, entities.ErrTaskNotFound
}

func (m *mockTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

type mockMailer struct {
	sendFn func(ctx context.Context, msg ports.MailMessage) error
	sent   []ports.MailMessage
}

func (m *mockMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockProjectRepo struct {
	createFn func(ctx context.Context, project *entities.Project) error
	listFn   func(ctx context.Context) ([]*entities.Project, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, project *entities.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context) ([]*entities.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
