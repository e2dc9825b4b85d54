package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/ports"
)

// StandupRepositoryImpl implements the StandupRepository interface
type StandupRepositoryImpl struct {
	db *sqlx.DB
}

// NewStandupRepository creates a new standup repository
func NewStandupRepository(db *sqlx.DB) ports.StandupRepository {
	return &StandupRepositoryImpl{db: db}
}

// standupRow carries a standup joined with the owning user's profile.
type standupRow struct {
	entities.Standup
	OwnerName  string            `db:"owner_name"`
	OwnerEmail string            `db:"owner_email"`
	OwnerRole  entities.UserRole `db:"owner_role"`
	OwnerTeam  string            `db:"owner_team"`
}

func (row *standupRow) toEntity() *entities.Standup {
	s := row.Standup
	s.User = &entities.Profile{
		ID:    s.UserID,
		Name:  row.OwnerName,
		Email: row.OwnerEmail,
		Role:  row.OwnerRole,
		Team:  row.OwnerTeam,
	}
	return &s
}

const standupSelect = `
	SELECT s.id, s.user_id, s.date, s.completed_yesterday, s.plan_today,
		s.blockers, s.project_name, s.status, s.created_at, s.updated_at,
		u.name AS owner_name, u.email AS owner_email,
		u.role AS owner_role, u.team AS owner_team
	FROM standups s
	JOIN users u ON u.id = s.user_id`

func (r *StandupRepositoryImpl) Create(ctx context.Context, standup *entities.Standup) error {
	query := `
		INSERT INTO standups (id, user_id, date, completed_yesterday, plan_today,
			blockers, project_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if standup.ID == uuid.Nil {
		standup.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		standup.ID, standup.UserID, standup.Date, standup.CompletedYesterday,
		standup.PlanToday, standup.Blockers, standup.ProjectName, standup.Status,
	).Scan(&standup.CreatedAt, &standup.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrDuplicateStandup
		}
		return fmt.Errorf("create standup: %w", err)
	}

	return nil
}

func (r *StandupRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
	query := standupSelect + ` WHERE s.id = $1`

	var row standupRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrStandupNotFound
		}
		return nil, fmt.Errorf("get standup by id: %w", err)
	}

	return row.toEntity(), nil
}

func (r *StandupRepositoryImpl) GetByUserAndWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entities.Standup, error) {
	query := standupSelect + ` WHERE s.user_id = $1 AND s.date >= $2 AND s.date < $3`

	var row standupRow
	err := r.db.GetContext(ctx, &row, query, userID, start, end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrStandupNotFound
		}
		return nil, fmt.Errorf("get standup by user and window: %w", err)
	}

	return row.toEntity(), nil
}

func (r *StandupRepositoryImpl) Update(ctx context.Context, standup *entities.Standup) error {
	query := `
		UPDATE standups
		SET completed_yesterday = $2, plan_today = $3, blockers = $4,
			project_name = $5, status = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		standup.ID, standup.CompletedYesterday, standup.PlanToday,
		standup.Blockers, standup.ProjectName, standup.Status,
	).Scan(&standup.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrStandupNotFound
		}
		return fmt.Errorf("update standup: %w", err)
	}

	return nil
}

func (r *StandupRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, filter ports.StandupHistoryFilter) ([]*entities.Standup, error) {
	query := standupSelect + ` WHERE s.user_id = $1`
	args := []interface{}{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND s.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND s.date <= $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 30
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY s.date DESC LIMIT $%d", len(args))

	var rows []standupRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list standups by user: %w", err)
	}

	standups := make([]*entities.Standup, len(rows))
	for i := range rows {
		standups[i] = rows[i].toEntity()
	}
	return standups, nil
}

func (r *StandupRepositoryImpl) ListByWindow(ctx context.Context, start, end time.Time) ([]*entities.Standup, error) {
	query := standupSelect + `
		WHERE s.date >= $1 AND s.date < $2
		ORDER BY u.name ASC, s.date ASC`

	var rows []standupRow
	err := r.db.SelectContext(ctx, &rows, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list standups by window: %w", err)
	}

	standups := make([]*entities.Standup, len(rows))
	for i := range rows {
		standups[i] = rows[i].toEntity()
	}
	return standups, nil
}

func (r *StandupRepositoryImpl) ExistsCreatedInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM standups
			WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, start, end)
	if err != nil {
		return false, fmt.Errorf("check standup exists in window: %w", err)
	}

	return exists, nil
}
