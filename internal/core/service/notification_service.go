package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

const unreadNotifications = "notifications"

// NotificationService stores and serves in-app notifications.
type NotificationService struct {
	notifications ports.NotificationRepository
	unread        ports.UnreadCounter
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, unread ports.UnreadCounter, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, unread: unread, log: log}
}

// Notify creates a notification for a user. Failures are logged and swallowed:
// notifications are a side effect of another request and must never fail it.
func (s *NotificationService) Notify(ctx context.Context, userID, kind, title, body string) {
	_, err := s.notifications.Insert(ctx, &domain.Notification{
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("kind", kind).Msg("notification insert failed")
		return
	}
	if err := s.unread.Incr(ctx, userID, unreadNotifications); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("unread counter incr failed")
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notifications.MarkRead(ctx, id, userID, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.unread.Reset(ctx, userID, unreadNotifications); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("unread counter reset failed")
	}
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) int64 {
	n, err := s.unread.Get(ctx, userID, unreadNotifications)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("unread counter read failed")
		return 0
	}
	return n
}
