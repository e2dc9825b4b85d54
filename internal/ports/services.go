package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
)

// Claims is the identity resolved from a verified bearer token.
type Claims struct {
	UserID string
	Name   string
	Email  string
	Role   entities.UserRole
	Team   string
}

// SubmitStandupRequest carries one daily submission. Blockers defaults to
// "None" when empty.
type SubmitStandupRequest struct {
	CompletedYesterday string `json:"completed_yesterday" validate:"required"`
	PlanToday          string `json:"plan_today" validate:"required"`
	Blockers           string `json:"blockers"`
	ProjectName        string `json:"project_name"`
}

// UpdateStandupRequest is a partial patch; nil fields are left unchanged.
type UpdateStandupRequest struct {
	CompletedYesterday *string `json:"completed_yesterday"`
	PlanToday          *string `json:"plan_today"`
	Blockers           *string `json:"blockers"`
}

// TeamStandupFilter scopes the team rollup. A nil Date means today.
// Team, UserID and Project are applied in memory over the profile-joined
// day result, matching modest team sizes.
type TeamStandupFilter struct {
	Date    *time.Time
	Team    string
	UserID  *uuid.UUID
	Project string
}

// CreateTaskRequest carries a new task. Status and Priority are free
// strings here and validated against their enumerations by the engine.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Project     string     `json:"project" validate:"required"`
	Description string     `json:"description"`
	Assignee    *uuid.UUID `json:"assignee"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest is a partial patch; nil fields are left unchanged.
// DueDate is a string so an explicit empty value can clear the due date.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Project     *string    `json:"project"`
	Assignee    *uuid.UUID `json:"assignee"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *string    `json:"due_date"`
}

// MyTasksFilter narrows a user's own task listing. Date selects tasks due
// within that calendar day.
type MyTasksFilter struct {
	Status  string
	Project string
	Date    *time.Time
}

// TeamTasksFilter scopes the team task view. Team is applied in memory
// against the joined assignee profile; the rest are database predicates.
type TeamTasksFilter struct {
	Status   string
	Project  string
	Assignee *uuid.UUID
	Date     *time.Time
	Team     string
}

// RegisterRequest creates a new account. Role defaults to member.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
	Team     string `json:"team"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  *entities.Profile `json:"user"`
}

// CreateProjectRequest adds an entry to the project reference list.
type CreateProjectRequest struct {
	Name     string `json:"name" validate:"required"`
	TeamLead string `json:"team_lead"`
}

// MailMessage is a single outbound notification.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// MailSender delivers notifications best-effort; callers log and continue
// on failure.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// ReminderResult summarises one reminder scan.
type ReminderResult struct {
	Scanned int `json:"scanned"`
	Skipped int `json:"skipped"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}
