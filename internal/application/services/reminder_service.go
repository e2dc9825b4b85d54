package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
	"github.com/dailysync/core/internal/timeutil"
)

// ReminderService scans for members without a same-day standup and sends
// each a reminder mail. Delivery is best-effort: a failure for one user
// never aborts the scan.
type ReminderService struct {
	userRepo    ports.UserRepository
	standupRepo ports.StandupRepository
	mailer      ports.MailSender
	logger      *logger.Logger
	loc         *time.Location
	now         func() time.Time
}

// NewReminderService creates a new reminder service.
func NewReminderService(userRepo ports.UserRepository, standupRepo ports.StandupRepository, mailer ports.MailSender, loc *time.Location, logger *logger.Logger) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		userRepo:    userRepo,
		standupRepo: standupRepo,
		mailer:      mailer,
		logger:      logger,
		loc:         loc,
		now:         time.Now,
	}
}

// RunAs triggers a scan on demand. Lead/admin only.
func (s *ReminderService) RunAs(ctx context.Context, identity entities.Identity) (*ports.ReminderResult, error) {
	if !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}
	return s.Run(ctx)
}

// Run scans all users outside the lead/admin roles and mails everyone who
// has not submitted a standup today. Overlapping runs are tolerated; a
// user who already submitted is simply skipped.
func (s *ReminderService) Run(ctx context.Context) (*ports.ReminderResult, error) {
	users, err := s.userRepo.List(ctx, ports.UserFilter{
		ExcludeRoles: []entities.UserRole{entities.RoleLead, entities.RoleAdmin},
	})
	if err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}

	start, end := timeutil.DayWindow(s.now(), s.loc)
	result := &ports.ReminderResult{Scanned: len(users)}

	for _, user := range users {
		exists, err := s.standupRepo.ExistsCreatedInWindow(ctx, user.ID, start, end)
		if err != nil {
			s.logger.Errorw("Reminder check failed", "user_id", user.ID, "error", err)
			result.Failed++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		if err := s.mailer.Send(ctx, reminderMessage(user)); err != nil {
			s.logger.Errorw("Reminder mail failed", "user_id", user.ID, "email", user.Email, "error", err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	s.logger.Infow("Reminder scan finished",
		"scanned", result.Scanned,
		"skipped", result.Skipped,
		"sent", result.Sent,
		"failed", result.Failed,
	)

	return result, nil
}

func reminderMessage(user *entities.User) ports.MailMessage {
	return ports.MailMessage{
		To:      user.Email,
		Subject: "Standup reminder: you haven't posted an update today",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYou haven't submitted your daily standup yet. "+
				"Take a minute to share what you did yesterday, what you plan today, and any blockers.\n",
			user.Name,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>You haven't submitted your daily standup yet. "+
				"Take a minute to share what you did yesterday, what you plan today, and any blockers.</p>",
			user.Name,
		),
	}
}
