package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// taskRow carries a task joined with assignee and creator profiles.
type taskRow struct {
	entities.Task
	AssigneeName  string            `db:"assignee_name"`
	AssigneeEmail string            `db:"assignee_email"`
	AssigneeRole  entities.UserRole `db:"assignee_role"`
	AssigneeTeam  string            `db:"assignee_team"`
	CreatorName   string            `db:"creator_name"`
	CreatorEmail  string            `db:"creator_email"`
	CreatorRole   entities.UserRole `db:"creator_role"`
	CreatorTeam   string            `db:"creator_team"`
}

func (row *taskRow) toEntity() *entities.Task {
	t := row.Task
	t.Assignee = &entities.Profile{
		ID:    t.AssigneeID,
		Name:  row.AssigneeName,
		Email: row.AssigneeEmail,
		Role:  row.AssigneeRole,
		Team:  row.AssigneeTeam,
	}
	t.CreatedBy = &entities.Profile{
		ID:    t.CreatedByID,
		Name:  row.CreatorName,
		Email: row.CreatorEmail,
		Role:  row.CreatorRole,
		Team:  row.CreatorTeam,
	}
	return &t
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.project, t.assignee_id, t.created_by,
		t.status, t.priority, t.due_date, t.created_at, t.updated_at,
		a.name AS assignee_name, a.email AS assignee_email,
		a.role AS assignee_role, a.team AS assignee_team,
		c.name AS creator_name, c.email AS creator_email,
		c.role AS creator_role, c.team AS creator_team
	FROM tasks t
	JOIN users a ON a.id = t.assignee_id
	JOIN users c ON c.id = t.created_by`

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, project, assignee_id, created_by,
			status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Project,
		task.AssigneeID, task.CreatedByID, task.Status, task.Priority, task.DueDate,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := taskSelect + ` WHERE t.id = $1`

	var row taskRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return row.toEntity(), nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, project = $4, assignee_id = $5,
			status = $6, priority = $7, due_date = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Project,
		task.AssigneeID, task.Status, task.Priority, task.DueDate,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	query := taskSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.Assignee != nil {
		args = append(args, *filter.Assignee)
		query += fmt.Sprintf(" AND t.assignee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if filter.Project != "" {
		args = append(args, filter.Project)
		query += fmt.Sprintf(" AND t.project = $%d", len(args))
	}
	if filter.DueStart != nil {
		args = append(args, *filter.DueStart)
		query += fmt.Sprintf(" AND t.due_date >= $%d", len(args))
	}
	if filter.DueEnd != nil {
		args = append(args, *filter.DueEnd)
		query += fmt.Sprintf(" AND t.due_date < $%d", len(args))
	}

	query += " ORDER BY t.due_date ASC NULLS LAST, t.created_at DESC"

	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*entities.Task, len(rows))
	for i := range rows {
		tasks[i] = rows[i].toEntity()
	}
	return tasks, nil
}
