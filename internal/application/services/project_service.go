package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

// ProjectService manages the project reference list. Entries are labels
// for dropdowns; tasks reference project names freely and nothing checks
// membership against this list.
type ProjectService struct {
	projectRepo ports.ProjectRepository
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create adds a project reference entry. Lead/admin only.
func (s *ProjectService) Create(ctx context.Context, identity entities.Identity, req ports.CreateProjectRequest) (*entities.Project, error) {
	if !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entities.NewValidationError("name", "is required")
	}

	project := &entities.Project{
		ID:       uuid.New(),
		Name:     name,
		TeamLead: strings.TrimSpace(req.TeamLead),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Infow("Project created", "project_id", project.ID, "name", project.Name)

	return project, nil
}

// List returns all project reference entries.
func (s *ProjectService) List(ctx context.Context) ([]*entities.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}
