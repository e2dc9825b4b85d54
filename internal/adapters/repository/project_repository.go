package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (id, name, team_lead)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		project.ID, project.Name, project.TeamLead,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *ProjectRepositoryImpl) List(ctx context.Context) ([]*entities.Project, error) {
	query := `
		SELECT id, name, team_lead, created_at, updated_at
		FROM projects
		ORDER BY name ASC`

	var projects []*entities.Project
	err := r.db.SelectContext(ctx, &projects, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}
