package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

type pendingAlterationLister interface {
	ListPendingBetween(ctx context.Context, from, to models.Date) ([]models.Alteration, error)
}

// ReminderService nudges replacement employees about staff alterations they have not answered yet.
type ReminderService struct {
	alterations pendingAlterationLister
	notifier    notificationSender
	lookahead   int
	logger      *zap.Logger
	now         func() time.Time
}

// NewReminderService constructs the service. lookaheadDays bounds how far ahead classes are considered.
func NewReminderService(alterations pendingAlterationLister, notifier notificationSender, lookaheadDays int, logger *zap.Logger) *ReminderService {
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{alterations: alterations, notifier: notifier, lookahead: lookaheadDays, logger: logger, now: time.Now}
}

// RemindPending sends one reminder per pending alteration with a class between today and the lookahead horizon.
// It returns how many reminders were sent; individual send failures are logged and skipped.
func (s *ReminderService) RemindPending(ctx context.Context) (int, error) {
	today := s.now().UTC()
	from := models.NewDate(today.Year(), today.Month(), today.Day())
	to := models.Date{Time: from.AddDate(0, 0, s.lookahead)}

	pending, err := s.alterations.ListPendingBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("load pending alterations: %w", err)
	}
	sent := 0
	for i := range pending {
		alteration := &pending[i]
		message := fmt.Sprintf("Reminder: class alteration (ID: %d) on %s (Period: %d, Subject: %s) is awaiting your approval",
			alteration.ID, alteration.ClassDate.String(), alteration.ClassPeriod, alteration.SubjectName)
		if _, err := s.notifier.Send(ctx, alteration.ReplacementEmpID(), models.NotificationTypeAlterationReminder, message); err != nil {
			s.logger.Warn("failed to send alteration reminder", zap.Int64("alteration_id", alteration.ID), zap.Error(err))
			continue
		}
		sent++
	}
	s.logger.Info("pending alteration reminders sent", zap.Int("sent", sent), zap.Int("pending", len(pending)))
	return sent, nil
}
