package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
	"github.com/noah-isme/leave-alteration-api/pkg/jobs"
)

// NotificationJobType tags delivery jobs on the queue.
const NotificationJobType = "notification.deliver"

type notificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientEmpID string, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipientEmpID string, readAt time.Time) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type messagePublisher interface {
	Publish(ctx context.Context, channel string, value interface{}) error
}

// NotificationService persists in-app notifications and hands them to the delivery queue.
type NotificationService struct {
	store  notificationStore
	queue  jobDispatcher
	worker *NotificationDeliveryWorker
	logger *zap.Logger
	now    func() time.Time
}

// NewNotificationService constructs the service. With a nil queue, delivery happens inline through worker.
func NewNotificationService(store notificationStore, queue jobDispatcher, worker *NotificationDeliveryWorker, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{store: store, queue: queue, worker: worker, logger: logger, now: time.Now}
}

// Send stores the notification and schedules its delivery.
func (s *NotificationService) Send(ctx context.Context, recipientEmpID string, kind models.NotificationType, message string) (*models.Notification, error) {
	recipientEmpID = strings.TrimSpace(recipientEmpID)
	if recipientEmpID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recipient is required")
	}
	notification := &models.Notification{
		RecipientID: recipientEmpID,
		Type:        kind,
		Message:     message,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, notification); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store notification")
	}

	switch {
	case s.queue != nil:
		if err := s.queue.Enqueue(jobs.Job{ID: notification.ID, Type: NotificationJobType, Payload: *notification}); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue notification")
		}
	case s.worker != nil:
		if err := s.worker.Deliver(ctx, *notification); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deliver notification")
		}
	}
	s.logger.Debug("notification sent", zap.String("notification_id", notification.ID), zap.String("recipient", recipientEmpID))
	return notification, nil
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientEmpID string, limit, offset int) ([]models.Notification, error) {
	items, err := s.store.ListByRecipient(ctx, recipientEmpID, limit, offset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return items, nil
}

// MarkRead flags a notification as read. Only the recipient can do so.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientEmpID string) error {
	if err := s.store.MarkRead(ctx, id, recipientEmpID, s.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound("Notification", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	return nil
}

// NotificationDeliveryWorker pushes stored notifications to subscribers over pub/sub.
type NotificationDeliveryWorker struct {
	publisher messagePublisher
	channel   string
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationDeliveryWorker constructs a worker. A nil publisher turns delivery into a logged no-op.
func NewNotificationDeliveryWorker(publisher messagePublisher, channel string, metrics *MetricsService, logger *zap.Logger) *NotificationDeliveryWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if channel == "" {
		channel = "notifications"
	}
	return &NotificationDeliveryWorker{publisher: publisher, channel: channel, metrics: metrics, logger: logger}
}

// Channel returns the per-recipient channel name.
func (w *NotificationDeliveryWorker) Channel(recipientEmpID string) string {
	return fmt.Sprintf("%s:%s", w.channel, recipientEmpID)
}

// Handle processes a queue job.
func (w *NotificationDeliveryWorker) Handle(ctx context.Context, job jobs.Job) error {
	var notification models.Notification
	switch payload := job.Payload.(type) {
	case models.Notification:
		notification = payload
	case *models.Notification:
		if payload == nil {
			return fmt.Errorf("job %s: empty notification payload", job.ID)
		}
		notification = *payload
	default:
		w.logger.Error("unexpected notification payload", zap.String("job_id", job.ID), zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	return w.Deliver(ctx, notification)
}

// Deliver publishes one notification.
func (w *NotificationDeliveryWorker) Deliver(ctx context.Context, notification models.Notification) error {
	if w.publisher == nil {
		w.logger.Debug("notification delivery skipped, no publisher", zap.String("notification_id", notification.ID))
		return nil
	}
	err := w.publisher.Publish(ctx, w.Channel(notification.RecipientID), notification)
	w.metrics.RecordNotificationDelivery(err == nil)
	if err != nil {
		return fmt.Errorf("publish notification %s: %w", notification.ID, err)
	}
	return nil
}

// Exhausted logs notifications that could not be delivered after all retries.
func (w *NotificationDeliveryWorker) Exhausted(job jobs.Job, err error) {
	w.logger.Error("notification delivery abandoned", zap.String("notification_id", job.ID), zap.Int("attempts", job.Attempt), zap.Error(err))
}
