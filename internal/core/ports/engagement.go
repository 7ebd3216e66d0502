package ports

import (
	"context"
	"time"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// Conversation returns messages between two principals sent after since,
	// oldest first. A zero since returns the whole thread.
	Conversation(ctx context.Context, a, b string, since time.Time) ([]domain.Message, error)
	MarkRead(ctx context.Context, recipientID, senderID string, at time.Time) error
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string, at time.Time) error
}

// CheckInRepository persists athlete check-ins.
type CheckInRepository interface {
	Insert(ctx context.Context, ci *domain.CheckIn) (*domain.CheckIn, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.CheckIn, error)
}

// FeedbackRepository persists athlete feedback.
type FeedbackRepository interface {
	Insert(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Feedback, error)
}

// UnreadCounter tracks per-user unread counts in a fast store. Counts are a
// best-effort cache; the message rows remain the source of truth.
type UnreadCounter interface {
	Incr(ctx context.Context, userID, kind string) error
	Get(ctx context.Context, userID, kind string) (int64, error)
	Reset(ctx context.Context, userID, kind string) error
}
