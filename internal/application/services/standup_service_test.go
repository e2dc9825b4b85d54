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

func memberIdentity() entities.Identity {
	return entities.Identity{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  entities.RoleMember,
		Team:  "platform",
	}
}

func leadIdentity() entities.Identity {
	return entities.Identity{
		ID:    uuid.New(),
		Name:  "Bob",
		Email: "bob@example.com",
		Role:  entities.RoleLead,
		Team:  "platform",
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newStandupService(repo *mockStandupRepo, now time.Time) *StandupService {
	svc := NewStandupService(repo, time.UTC, logger.Nop())
	svc.now = fixedClock(now)
	return svc
}

func TestStandupSubmit_CreatesWhenNoneExists(t *testing.T) {
	identity := memberIdentity()
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	var created *entities.Standup
	repo := &mockStandupRepo{
		createFn: func(ctx context.Context, s *entities.Standup) error {
			created = s
			return nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
			if created == nil || created.ID != id {
				return nil, entities.ErrStandupNotFound
			}
			return created, nil
		},
	}

	svc := newStandupService(repo, now)

	standup, wasCreated, err := svc.Submit(context.Background(), identity, ports.SubmitStandupRequest{
		CompletedYesterday: "Shipped the export endpoint",
		PlanToday:          "Start on pagination",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !wasCreated {
		t.Error("expected a newly created standup")
	}
	if standup.UserID != identity.ID {
		t.Errorf("standup assigned to %s, want %s", standup.UserID, identity.ID)
	}
	if standup.Blockers != "None" {
		t.Errorf("empty blockers should default to %q, got %q", "None", standup.Blockers)
	}
	if standup.Status != entities.StandupStatusSubmitted {
		t.Errorf("unexpected status %q", standup.Status)
	}
}

func TestStandupSubmit_OverwritesSameDay(t *testing.T) {
	identity := memberIdentity()
	now := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)

	existing := &entities.Standup{
		ID:                 uuid.New(),
		UserID:             identity.ID,
		Date:               now.Add(-4 * time.Hour),
		CompletedYesterday: "old",
		PlanToday:          "old",
		Blockers:           "None",
	}

	updateCalled := false
	repo := &mockStandupRepo{
		getByUserAndWindowFn: func(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entities.Standup, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, s *entities.Standup) error {
			updateCalled = true
			if s.ID != existing.ID {
				t.Errorf("overwrite must reuse the existing record, got id %s", s.ID)
			}
			return nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
			return existing, nil
		},
		createFn: func(ctx context.Context, s *entities.Standup) error {
			t.Error("Create must not be called when a same-day standup exists")
			return nil
		},
	}

	svc := newStandupService(repo, now)

	standup, wasCreated, err := svc.Submit(context.Background(), identity, ports.SubmitStandupRequest{
		CompletedYesterday: "Fixed the flaky test",
		PlanToday:          "Review queue",
		Blockers:           "Waiting on infra",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if wasCreated {
		t.Error("resubmission must report an overwrite, not a create")
	}
	if !updateCalled {
		t.Error("expected Update to be called")
	}
	if standup.CompletedYesterday != "Fixed the flaky test" {
		t.Errorf("completed not overwritten, got %q", standup.CompletedYesterday)
	}
	if standup.Blockers != "Waiting on infra" {
		t.Errorf("blockers not overwritten, got %q", standup.Blockers)
	}
}

func TestStandupSubmit_RetriesOnDuplicateRace(t *testing.T) {
	identity := memberIdentity()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	racedRecord := &entities.Standup{
		ID:     uuid.New(),
		UserID: identity.ID,
		Date:   now,
	}

	lookups := 0
	repo := &mockStandupRepo{
		getByUserAndWindowFn: func(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entities.Standup, error) {
			lookups++
			if lookups == 1 {
				// First check sees nothing; the concurrent submit lands after.
				return nil, entities.ErrStandupNotFound
			}
			return racedRecord, nil
		},
		createFn: func(ctx context.Context, s *entities.Standup) error {
			return entities.ErrDuplicateStandup
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
			return racedRecord, nil
		},
	}

	svc := newStandupService(repo, now)

	_, wasCreated, err := svc.Submit(context.Background(), identity, ports.SubmitStandupRequest{
		CompletedYesterday: "a",
		PlanToday:          "b",
	})
	if err != nil {
		t.Fatalf("Submit should recover from the duplicate race, got: %v", err)
	}
	if wasCreated {
		t.Error("recovered duplicate must report an overwrite")
	}
	if lookups != 2 {
		t.Errorf("expected a second window lookup after the conflict, got %d", lookups)
	}
}

func TestStandupSubmit_ValidatesRequiredFields(t *testing.T) {
	svc := newStandupService(&mockStandupRepo{}, time.Now())
	identity := memberIdentity()

	cases := []struct {
		name string
		req  ports.SubmitStandupRequest
	}{
		{"missing completed", ports.SubmitStandupRequest{PlanToday: "plan"}},
		{"missing plan", ports.SubmitStandupRequest{CompletedYesterday: "done"}},
		{"whitespace only", ports.SubmitStandupRequest{CompletedYesterday: "   ", PlanToday: "plan"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Submit(context.Background(), identity, tc.req)
			var ve *entities.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestStandupGetToday_ReturnsNilWhenAbsent(t *testing.T) {
	svc := newStandupService(&mockStandupRepo{}, time.Now())

	standup, err := svc.GetToday(context.Background(), memberIdentity())
	if err != nil {
		t.Fatalf("GetToday returned error: %v", err)
	}
	if standup != nil {
		t.Errorf("expected nil standup, got %+v", standup)
	}
}

func TestStandupGetTeam_RequiresLeadOrAdmin(t *testing.T) {
	svc := newStandupService(&mockStandupRepo{}, time.Now())

	_, err := svc.GetTeam(context.Background(), memberIdentity(), ports.TeamStandupFilter{})
	if !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("member must not read the team view, got %v", err)
	}
}

func TestStandupGetTeam_DefaultsToTodayWindow(t *testing.T) {
	lead := leadIdentity()
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	var gotStart, gotEnd time.Time
	repo := &mockStandupRepo{
		listByWindowFn: func(ctx context.Context, start, end time.Time) ([]*entities.Standup, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}
	svc := newStandupService(repo, now)

	if _, err := svc.GetTeam(context.Background(), lead, ports.TeamStandupFilter{}); err != nil {
		t.Fatalf("GetTeam returned error: %v", err)
	}
	if !gotStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("default window start = %v, want today's midnight", gotStart)
	}
	if !gotEnd.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("default window end = %v, want next midnight", gotEnd)
	}
}

func TestStandupGetTeam_AppliesPostFilters(t *testing.T) {
	lead := leadIdentity()
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	aliceID := uuid.New()
	bobID := uuid.New()
	day := []*entities.Standup{
		{
			ID: uuid.New(), UserID: aliceID, ProjectName: "atlas",
			User: &entities.Profile{ID: aliceID, Name: "Alice", Team: "platform"},
		},
		{
			ID: uuid.New(), UserID: bobID, ProjectName: "beacon",
			User: &entities.Profile{ID: bobID, Name: "Bob", Team: "mobile"},
		},
	}

	repo := &mockStandupRepo{
		listByWindowFn: func(ctx context.Context, start, end time.Time) ([]*entities.Standup, error) {
			return day, nil
		},
	}
	svc := newStandupService(repo, now)

	byTeam, err := svc.GetTeam(context.Background(), lead, ports.TeamStandupFilter{Team: "mobile"})
	if err != nil {
		t.Fatalf("GetTeam returned error: %v", err)
	}
	if len(byTeam) != 1 || byTeam[0].UserID != bobID {
		t.Errorf("team filter returned %d rows", len(byTeam))
	}

	byUser, err := svc.GetTeam(context.Background(), lead, ports.TeamStandupFilter{UserID: &aliceID})
	if err != nil {
		t.Fatalf("GetTeam returned error: %v", err)
	}
	if len(byUser) != 1 || byUser[0].UserID != aliceID {
		t.Errorf("user filter returned %d rows", len(byUser))
	}

	byProject, err := svc.GetTeam(context.Background(), lead, ports.TeamStandupFilter{Project: "atlas"})
	if err != nil {
		t.Fatalf("GetTeam returned error: %v", err)
	}
	if len(byProject) != 1 || byProject[0].ProjectName != "atlas" {
		t.Errorf("project filter returned %d rows", len(byProject))
	}
}

func TestStandupGetByID_OwnerOrElevatedOnly(t *testing.T) {
	owner := memberIdentity()
	other := memberIdentity()
	lead := leadIdentity()

	standup := &entities.Standup{ID: uuid.New(), UserID: owner.ID}
	repo := &mockStandupRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
			return standup, nil
		},
	}
	svc := newStandupService(repo, time.Now())

	if _, err := svc.GetByID(context.Background(), owner, standup.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), lead, standup.ID); err != nil {
		t.Errorf("lead read failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), other, standup.ID); !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("unrelated member read must be forbidden, got %v", err)
	}
}

func TestStandupUpdate_OwnerOnly(t *testing.T) {
	owner := memberIdentity()
	lead := leadIdentity()

	standup := &entities.Standup{
		ID:                 uuid.New(),
		UserID:             owner.ID,
		CompletedYesterday: "before",
		PlanToday:          "before",
	}
	repo := &mockStandupRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
			return standup, nil
		},
	}
	svc := newStandupService(repo, time.Now())

	plan := "reworked plan"
	if _, err := svc.Update(context.Background(), owner, standup.ID, ports.UpdateStandupRequest{PlanToday: &plan}); err != nil {
		t.Errorf("owner update failed: %v", err)
	}

	// Elevated roles can read any standup but never edit someone else's.
	if _, err := svc.Update(context.Background(), lead, standup.ID, ports.UpdateStandupRequest{PlanToday: &plan}); !errors.Is(err, entities.ErrForbidden) {
		t.Errorf("lead update of another user's standup must be forbidden, got %v", err)
	}
}

func TestStandupUpdate_RejectsEmptyCoreFields(t *testing.T) {
	owner := memberIdentity()
	standup := &entities.Standup{ID: uuid.New(), UserID: owner.ID}
	repo := &mockStandupRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.Standup, error) {
			return standup, nil
		},
	}
	svc := newStandupService(repo, time.Now())

	empty := "   "
	_, err := svc.Update(context.Background(), owner, standup.ID, ports.UpdateStandupRequest{CompletedYesterday: &empty})
	var ve *entities.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("blank completed_yesterday must fail validation, got %v", err)
	}
}

func TestStandupGetMine_DefaultsLimit(t *testing.T) {
	identity := memberIdentity()

	var gotFilter ports.StandupHistoryFilter
	repo := &mockStandupRepo{
		listByUserFn: func(ctx context.Context, userID uuid.UUID, filter ports.StandupHistoryFilter) ([]*entities.Standup, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newStandupService(repo, time.Now())

	if _, err := svc.GetMine(context.Background(), identity, ports.StandupHistoryFilter{}); err != nil {
		t.Fatalf("GetMine returned error: %v", err)
	}
	if gotFilter.Limit != 30 {
		t.Errorf("default history limit = %d, want 30", gotFilter.Limit)
	}
}
