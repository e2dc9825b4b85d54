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

// StandupService enforces the one-record-per-user-per-day rule and the
// ownership/role read scoping for standups.
type StandupService struct {
	standupRepo ports.StandupRepository
	logger      *logger.Logger
	loc         *time.Location
	now         func() time.Time
}

// NewStandupService creates a new standup service. loc is the reference
// timezone for calendar-day windows.
func NewStandupService(standupRepo ports.StandupRepository, loc *time.Location, logger *logger.Logger) *StandupService {
	if loc == nil {
		loc = time.UTC
	}
	return &StandupService{
		standupRepo: standupRepo,
		logger:      logger,
		loc:         loc,
		now:         time.Now,
	}
}

// Submit creates today's standup, or overwrites it in place if one already
// exists for the calling user. The returned bool is true when a new record
// was created.
func (s *StandupService) Submit(ctx context.Context, identity entities.Identity, req ports.SubmitStandupRequest) (*entities.Standup, bool, error) {
	completed := strings.TrimSpace(req.CompletedYesterday)
	plan := strings.TrimSpace(req.PlanToday)
	blockers := strings.TrimSpace(req.Blockers)
	projectName := strings.TrimSpace(req.ProjectName)

	if completed == "" {
		return nil, false, entities.NewValidationError("completed_yesterday", "is required")
	}
	if plan == "" {
		return nil, false, entities.NewValidationError("plan_today", "is required")
	}
	if blockers == "" {
		blockers = "None"
	}

	start, end := timeutil.DayWindow(s.now(), s.loc)

	existing, err := s.standupRepo.GetByUserAndWindow(ctx, identity.ID, start, end)
	if err == nil {
		updated, err := s.overwrite(ctx, existing, completed, plan, blockers, projectName)
		return updated, false, err
	}
	if !errors.Is(err, entities.ErrStandupNotFound) {
		return nil, false, fmt.Errorf("check existing standup: %w", err)
	}

	standup := &entities.Standup{
		ID:                 uuid.New(),
		UserID:             identity.ID,
		Date:               s.now(),
		CompletedYesterday: completed,
		PlanToday:          plan,
		Blockers:           blockers,
		ProjectName:        projectName,
		Status:             entities.StandupStatusSubmitted,
	}

	err = s.standupRepo.Create(ctx, standup)
	if errors.Is(err, entities.ErrDuplicateStandup) {
		// Lost the existence-check race: another submission for the same
		// day landed first. Retry as an update.
		existing, err = s.standupRepo.GetByUserAndWindow(ctx, identity.ID, start, end)
		if err != nil {
			return nil, false, fmt.Errorf("resolve duplicate standup: %w", err)
		}
		updated, err := s.overwrite(ctx, existing, completed, plan, blockers, projectName)
		return updated, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("create standup: %w", err)
	}

	s.logger.Infow("Standup submitted", "standup_id", standup.ID, "user_id", identity.ID)

	created, err := s.standupRepo.GetByID(ctx, standup.ID)
	if err != nil {
		return nil, false, fmt.Errorf("load created standup: %w", err)
	}
	return created, true, nil
}

func (s *StandupService) overwrite(ctx context.Context, standup *entities.Standup, completed, plan, blockers, projectName string) (*entities.Standup, error) {
	standup.CompletedYesterday = completed
	standup.PlanToday = plan
	standup.Blockers = blockers
	standup.ProjectName = projectName

	if err := s.standupRepo.Update(ctx, standup); err != nil {
		return nil, fmt.Errorf("update standup: %w", err)
	}

	s.logger.Infow("Standup overwritten for the day", "standup_id", standup.ID, "user_id", standup.UserID)

	updated, err := s.standupRepo.GetByID(ctx, standup.ID)
	if err != nil {
		return nil, fmt.Errorf("load updated standup: %w", err)
	}
	return updated, nil
}

// GetMine returns the caller's standup history, newest first, capped at
// the filter limit (default 30).
func (s *StandupService) GetMine(ctx context.Context, identity entities.Identity, filter ports.StandupHistoryFilter) ([]*entities.Standup, error) {
	if filter.Limit <= 0 {
		filter.Limit = 30
	}

	standups, err := s.standupRepo.ListByUser(ctx, identity.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list standups: %w", err)
	}

	return standups, nil
}

// GetToday returns the caller's standup for the current day, or nil
// (without error) when none exists yet.
func (s *StandupService) GetToday(ctx context.Context, identity entities.Identity) (*entities.Standup, error) {
	start, end := timeutil.DayWindow(s.now(), s.loc)

	standup, err := s.standupRepo.GetByUserAndWindow(ctx, identity.ID, start, end)
	if errors.Is(err, entities.ErrStandupNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get today's standup: %w", err)
	}

	return standup, nil
}

// GetTeam returns the day's standups across all users for lead/admin
// callers. Team, user and project filters are applied in memory over the
// profile-joined result.
func (s *StandupService) GetTeam(ctx context.Context, identity entities.Identity, filter ports.TeamStandupFilter) ([]*entities.Standup, error) {
	if !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	day := s.now()
	if filter.Date != nil {
		day = *filter.Date
	}
	start, end := timeutil.DayWindow(day, s.loc)

	standups, err := s.standupRepo.ListByWindow(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list team standups: %w", err)
	}

	// The repository returns the window ordered by owner name; the
	// post-filters preserve that order.
	filtered := make([]*entities.Standup, 0, len(standups))
	for _, standup := range standups {
		if filter.Team != "" && (standup.User == nil || standup.User.Team != filter.Team) {
			continue
		}
		if filter.UserID != nil && standup.UserID != *filter.UserID {
			continue
		}
		if filter.Project != "" && standup.ProjectName != filter.Project {
			continue
		}
		filtered = append(filtered, standup)
	}

	return filtered, nil
}

// GetByID returns one standup. The caller must own it or hold the lead or
// admin role.
func (s *StandupService) GetByID(ctx context.Context, identity entities.Identity, id uuid.UUID) (*entities.Standup, error) {
	standup, err := s.standupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if standup.UserID != identity.ID && !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	return standup, nil
}

// Update applies a partial patch to a standup. Only the owning user may
// update; leads and admins get no bypass here, unlike GetByID.
func (s *StandupService) Update(ctx context.Context, identity entities.Identity, id uuid.UUID, patch ports.UpdateStandupRequest) (*entities.Standup, error) {
	standup, err := s.standupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if standup.UserID != identity.ID {
		return nil, entities.ErrForbidden
	}

	if patch.CompletedYesterday != nil {
		trimmed := strings.TrimSpace(*patch.CompletedYesterday)
		if trimmed == "" {
			return nil, entities.NewValidationError("completed_yesterday", "must not be empty")
		}
		standup.CompletedYesterday = trimmed
	}
	if patch.PlanToday != nil {
		trimmed := strings.TrimSpace(*patch.PlanToday)
		if trimmed == "" {
			return nil, entities.NewValidationError("plan_today", "must not be empty")
		}
		standup.PlanToday = trimmed
	}
	if patch.Blockers != nil {
		standup.Blockers = strings.TrimSpace(*patch.Blockers)
	}

	if err := s.standupRepo.Update(ctx, standup); err != nil {
		return nil, fmt.Errorf("update standup: %w", err)
	}

	s.logger.Infow("Standup updated", "standup_id", standup.ID, "user_id", identity.ID)

	updated, err := s.standupRepo.GetByID(ctx, standup.ID)
	if err != nil {
		return nil, fmt.Errorf("load updated standup: %w", err)
	}
	return updated, nil
}
