package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeShiftAssigned        NotificationType = "shift_assigned"
	TypeShiftUpdated         NotificationType = "shift_updated"
	TypeShiftRemoved         NotificationType = "shift_removed"
	TypePeriodClosed         NotificationType = "period_closed"
	TypePeriodReopened       NotificationType = "period_reopened"
	TypePayrollConfirmed     NotificationType = "payroll_confirmed"
	TypePayrollPaid          NotificationType = "payroll_paid"
	TypeConfirmationReminder NotificationType = "confirmation_reminder"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeShiftAssigned,
		TypeShiftUpdated,
		TypeShiftRemoved,
		TypePeriodClosed,
		TypePeriodReopened,
		TypePayrollConfirmed,
		TypePayrollPaid,
		TypeConfirmationReminder,
	}
}

func (t NotificationType) IsValid() bool {
	for _, known := range AllNotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// HasEmail reports whether the type has a mail template.
func (t NotificationType) HasEmail() bool {
	switch t {
	case TypePeriodClosed, TypePayrollPaid, TypeConfirmationReminder:
		return true
	}
	return false
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// NotificationPreference represents user preference for a notification type
type NotificationPreference struct {
	ID               string
	UserID           string
	NotificationType NotificationType
	EmailEnabled     bool
	PushEnabled      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
