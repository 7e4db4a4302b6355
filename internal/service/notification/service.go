package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mol-coffee/mol-backend-go/internal/domain/notification"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/email"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
	// AppURL is linked from emails.
	AppURL string
}

// Mailer publishes mail messages; nil disables email.
type Mailer interface {
	Publish(ctx context.Context, msg email.MailMessage) error
}

type service struct {
	repo     notification.Repository
	profiles user.ProfileRepository
	hub      *sse.Hub
	mailer   Mailer
	config   Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, profiles user.ProfileRepository, hub *sse.Hub, mailer Mailer, cfg Config) notification.Service {
	// Set defaults
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:     repo,
		profiles: profiles,
		hub:      hub,
		mailer:   mailer,
		config:   cfg,
		queue:    make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	// Start background workers
	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func newNotification(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		CreatedAt:   time.Now(),
	}
}

// worker is the background worker that processes notification queue
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = newNotification(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("failed to insert notifications", "worker", id, "count", len(notifications), "error", err)
		} else {
			slog.Debug("notifications inserted", "worker", id, "count", len(notifications))
			for _, n := range notifications {
				s.push(n)
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) push(n *notification.Notification) {
	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  "notification",
		Data:   toResponse(n),
	})
}

// preference returns the recipient's setting for t, defaulting to everything on.
func (s *service) preference(ctx context.Context, userID string, t notification.NotificationType) (*notification.NotificationPreference, error) {
	pref, err := s.repo.GetPreference(ctx, userID, t)
	if errors.Is(err, notification.ErrPreferenceNotFound) {
		return &notification.NotificationPreference{UserID: userID, NotificationType: t, EmailEnabled: true, PushEnabled: true}, nil
	}
	return pref, err
}

// QueueNotification queues a notification for async processing and publishes
// its email when the recipient wants one.
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if !req.Type.IsValid() {
		return notification.ErrInvalidNotificationType
	}
	pref, err := s.preference(ctx, req.RecipientID, req.Type)
	if err != nil {
		return err
	}

	if pref.EmailEnabled && req.Type.HasEmail() && s.mailer != nil {
		s.sendEmail(ctx, req)
	}
	if !pref.PushEnabled {
		return nil
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, try direct insert
		return s.directInsert(ctx, req)
	}
}

// QueueBulkNotification queues multiple notifications for async processing
func (s *service) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Warn("failed to queue notification", "recipient", req.RecipientID, "type", string(req.Type), "error", err)
		}
	}
	return nil
}

func (s *service) sendEmail(ctx context.Context, req notification.CreateNotificationRequest) {
	profile, err := s.profiles.GetByID(ctx, req.RecipientID)
	if err != nil {
		slog.Warn("failed to load notification recipient", "recipient", req.RecipientID, "error", err)
		return
	}
	if !profile.IsActive || profile.Email == "" {
		return
	}

	data := map[string]interface{}{
		"Name":    profile.FullName,
		"Title":   req.Title,
		"Message": req.Message,
		"AppURL":  s.config.AppURL,
	}
	if month, ok := req.Data["month"]; ok {
		data["Month"] = month
	}

	msg := email.MailMessage{Type: string(req.Type), To: profile.Email, Data: data}
	if err := s.mailer.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish notification email", "recipient", req.RecipientID, "type", string(req.Type), "error", err)
	}
}

// directInsert inserts a notification directly when queue is full
func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := newNotification(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.push(n)
	return nil
}

// toResponse converts a Notification entity to NotificationResponse
func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if len(req.NotificationIDs) == 0 {
		return nil
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete removes a notification
func (s *service) Delete(ctx context.Context, userID string, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, userID)
}

// GetPreferences retrieves all notification preferences for a user
func (s *service) GetPreferences(ctx context.Context, userID string) ([]notification.PreferenceResponse, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefMap := make(map[notification.NotificationType]*notification.NotificationPreference)
	for _, p := range prefs {
		prefMap[p.NotificationType] = p
	}

	// Every type is listed; unset ones report the defaults.
	allTypes := notification.AllNotificationTypes()
	responses := make([]notification.PreferenceResponse, len(allTypes))

	for i, t := range allTypes {
		responses[i] = notification.PreferenceResponse{NotificationType: t, EmailEnabled: true, PushEnabled: true}
		if p, ok := prefMap[t]; ok {
			responses[i].EmailEnabled = p.EmailEnabled
			responses[i].PushEnabled = p.PushEnabled
		}
	}

	return responses, nil
}

// UpdatePreference updates a notification preference
func (s *service) UpdatePreference(ctx context.Context, userID string, req notification.UpdatePreferenceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	pref := &notification.NotificationPreference{
		UserID:           userID,
		NotificationType: req.NotificationType,
		EmailEnabled:     req.EmailEnabled,
		PushEnabled:      req.PushEnabled,
		UpdatedAt:        time.Now(),
	}

	return s.repo.UpsertPreference(ctx, pref)
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					select {
					case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and stops the workers
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
