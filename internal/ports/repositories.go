package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entities.User, error)
}

// UserFilter narrows user listings. ExcludeRoles is used by the reminder
// scan to skip leads and admins.
type UserFilter struct {
	Team         string
	ExcludeRoles []entities.UserRole
}

// StandupRepository defines the interface for standup data operations.
// Reads return records with the owning user's public profile attached.
type StandupRepository interface {
	// Create inserts a new standup. A unique violation on the per-day
	// constraint is reported as entities.ErrDuplicateStandup.
	Create(ctx context.Context, standup *entities.Standup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Standup, error)
	// GetByUserAndWindow returns the single standup whose date falls in
	// [start, end) for the user, or entities.ErrStandupNotFound.
	GetByUserAndWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entities.Standup, error)
	Update(ctx context.Context, standup *entities.Standup) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter StandupHistoryFilter) ([]*entities.Standup, error)
	// ListByWindow returns all standups in [start, end) ordered by the
	// owning user's name.
	ListByWindow(ctx context.Context, start, end time.Time) ([]*entities.Standup, error)
	// ExistsCreatedInWindow reports whether the user submitted a standup
	// whose created_at falls in [start, end). Used by the reminder scan.
	ExistsCreatedInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (bool, error)
}

// StandupHistoryFilter bounds a user's own standup history.
type StandupHistoryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TaskRepository defines the interface for task data operations. Reads
// return records with assignee and creator profiles attached.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
}

// TaskFilter narrows task listings at the database level. DueStart/DueEnd
// bound due_date as a half-open interval. Sort order is always due_date
// ascending with absent due dates last, then created_at descending.
type TaskFilter struct {
	Assignee *uuid.UUID
	Status   *entities.TaskStatus
	Project  string
	DueStart *time.Time
	DueEnd   *time.Time
}

// ProjectRepository defines the interface for the project reference list
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	List(ctx context.Context) ([]*entities.Project, error)
}
