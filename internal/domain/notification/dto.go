package notification

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// MarkAsReadRequest represents a request to mark notifications as read
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

// UpdatePreferenceRequest represents a request to update notification preference
type UpdatePreferenceRequest struct {
	NotificationType NotificationType `json:"notification_type"`
	EmailEnabled     bool             `json:"email_enabled"`
	PushEnabled      bool             `json:"push_enabled"`
}

func (r *UpdatePreferenceRequest) Validate() error {
	if r.NotificationType == "" {
		return validator.ValidationErrors{{Field: "notification_type", Message: "notification_type is required"}}
	}
	if !r.NotificationType.IsValid() {
		return validator.ValidationErrors{{Field: "notification_type", Message: ErrInvalidNotificationType.Error()}}
	}
	return nil
}

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// PreferenceResponse represents a notification preference in API responses
type PreferenceResponse struct {
	NotificationType NotificationType `json:"notification_type"`
	EmailEnabled     bool             `json:"email_enabled"`
	PushEnabled      bool             `json:"push_enabled"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ============= SSE Event =============

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
