package models

import "time"

// NotificationType groups in-app notifications by origin.
type NotificationType string

const (
	NotificationTypeAlterationAssigned NotificationType = "ALTERATION_ASSIGNED"
	NotificationTypeAlterationReminder NotificationType = "ALTERATION_REMINDER"
)

// Notification is an in-app message addressed to one employee.
type Notification struct {
	ID          string           `db:"id" json:"id"`
	RecipientID string           `db:"recipient_emp_id" json:"recipientEmpId"`
	Type        NotificationType `db:"type" json:"type"`
	Message     string           `db:"message" json:"message"`
	IsRead      bool             `db:"is_read" json:"isRead"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	ReadAt      *time.Time       `db:"read_at" json:"readAt,omitempty"`
}
