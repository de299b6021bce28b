package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/leave-alteration-api/internal/models"
)

// NotificationRepository stores in-app notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification row.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notifications (id, recipient_emp_id, type, message, is_read, created_at, read_at)
	VALUES (:id, :recipient_emp_id, :type, :message, :is_read, :created_at, :read_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListByRecipient returns the recipient's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientEmpID string, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT id, recipient_emp_id, type, message, is_read, created_at, read_at
	FROM notifications WHERE recipient_emp_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, recipientEmpID, limit, offset); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read; sql.ErrNoRows when it does not belong to the recipient.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientEmpID string, readAt time.Time) error {
	const query = `UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2 AND recipient_emp_id = $3`
	result, err := r.db.ExecContext(ctx, query, readAt, id, recipientEmpID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check notification update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
