package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

type pendingListerStub struct {
	from, to models.Date
	items    []models.Alteration
	err      error
}

func (p *pendingListerStub) ListPendingBetween(ctx context.Context, from, to models.Date) ([]models.Alteration, error) {
	p.from, p.to = from, to
	return p.items, p.err
}

func TestReminderServiceSendsPerPendingAlteration(t *testing.T) {
	lister := &pendingListerStub{items: []models.Alteration{
		{ID: 3, ClassDate: models.NewDate(2024, time.May, 2), ClassPeriod: 2, SubjectName: "Algorithms",
			Detail: models.StaffDetail{ReplacementEmpID: "E2", Status: models.NotificationStatusPending}},
		{ID: 4, ClassDate: models.NewDate(2024, time.May, 3), ClassPeriod: 5, SubjectName: "Compilers",
			Detail: models.StaffDetail{ReplacementEmpID: "E3", Status: models.NotificationStatusPending}},
	}}
	notifier := &recordingNotifier{}
	svc := NewReminderService(lister, notifier, 2, nil)
	svc.now = func() time.Time { return time.Date(2024, time.May, 1, 18, 30, 0, 0, time.UTC) }

	sent, err := svc.RemindPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, "2024-05-01", lister.from.String())
	assert.Equal(t, "2024-05-03", lister.to.String())
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "E2", notifier.sent[0].recipient)
	assert.Equal(t, models.NotificationTypeAlterationReminder, notifier.sent[0].kind)
	assert.Contains(t, notifier.sent[1].message, "(ID: 4)")
}

func TestReminderServiceErrors(t *testing.T) {
	svc := NewReminderService(&pendingListerStub{err: errors.New("db")}, &recordingNotifier{}, 1, nil)
	_, err := svc.RemindPending(context.Background())
	require.Error(t, err)

	lister := &pendingListerStub{items: []models.Alteration{{ID: 1, Detail: models.StaffDetail{ReplacementEmpID: "E2"}}}}
	svc = NewReminderService(lister, &recordingNotifier{err: errors.New("queue full")}, 1, nil)
	sent, err := svc.RemindPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}
