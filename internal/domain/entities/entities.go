package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrStandupNotFound       = errors.New("standup not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrProjectNotFound       = errors.New("project not found")
	ErrForbidden             = errors.New("not authorized")
	ErrMembersCannotReassign = errors.New("members can only assign tasks to themselves")
	ErrAssigneeNotFound      = errors.New("assignee user not found")
	ErrDuplicateStandup      = errors.New("standup already exists for this day")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// ValidationError reports a rejected input field. It is always returned
// before any persistence attempt.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Enums and types
type UserRole string

const (
	RoleMember UserRole = "member"
	RoleLead   UserRole = "lead"
	RoleAdmin  UserRole = "admin"
)

type StandupStatus string

const (
	StandupStatusSubmitted StandupStatus = "submitted"
	StandupStatusReviewed  StandupStatus = "reviewed"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusBlocked    TaskStatus = "blocked"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// User represents a registered account. The password hash never leaves the
// persistence and auth layers.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	Team         string    `json:"team" db:"team"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is the public slice of a user attached to standups and tasks.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  UserRole  `json:"role"`
	Team  string    `json:"team"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Team:  u.Team,
	}
}

// Identity is the resolved caller context carried through every request.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  UserRole
	Team  string
}

// IsLeadOrAdmin reports whether the identity may access team-wide views.
func (i Identity) IsLeadOrAdmin() bool {
	return i.Role == RoleLead || i.Role == RoleAdmin
}

// Standup is one user's daily status update. At most one exists per
// (user, calendar day); same-day submissions overwrite in place.
type Standup struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	UserID             uuid.UUID     `json:"user_id" db:"user_id"`
	Date               time.Time     `json:"date" db:"date"`
	CompletedYesterday string        `json:"completed_yesterday" db:"completed_yesterday"`
	PlanToday          string        `json:"plan_today" db:"plan_today"`
	Blockers           string        `json:"blockers" db:"blockers"`
	ProjectName        string        `json:"project_name" db:"project_name"`
	Status             StandupStatus `json:"status" db:"status"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
	User               *Profile      `json:"user,omitempty" db:"-"`
}

// Task is a unit of work with an assignee, status, priority and an
// optional due date. Task.Project is a free-text label, not a foreign key.
type Task struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Project     string       `json:"project" db:"project"`
	AssigneeID  uuid.UUID    `json:"assignee_id" db:"assignee_id"`
	CreatedByID uuid.UUID    `json:"created_by_id" db:"created_by"`
	Status      TaskStatus   `json:"status" db:"status"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	DueDate     *time.Time   `json:"due_date" db:"due_date"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	Assignee    *Profile     `json:"assignee,omitempty" db:"-"`
	CreatedBy   *Profile     `json:"created_by,omitempty" db:"-"`
}

// IsOwnedBy reports whether the given user is the task's assignee or creator.
func (t *Task) IsOwnedBy(id uuid.UUID) bool {
	return t.AssigneeID == id || t.CreatedByID == id
}

// Project is a lightweight reference entry for UI dropdowns. Tasks may
// reference project names absent from this list.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	TeamLead  string    `json:"team_lead" db:"team_lead"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Utility methods
func (r UserRole) IsValid() bool {
	switch r {
	case RoleMember, RoleLead, RoleAdmin:
		return true
	default:
		return false
	}
}

func (s StandupStatus) IsValid() bool {
	switch s {
	case StandupStatusSubmitted, StandupStatusReviewed:
		return true
	default:
		return false
	}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked:
		return true
	default:
		return false
	}
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}
