package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

const unreadMessages = "messages"

// MessageService implements polled direct messaging. Unread counts live in a
// fast counter store; counter failures are logged and swallowed because the
// message rows remain authoritative.
type MessageService struct {
	messages ports.MessageRepository
	unread   ports.UnreadCounter
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, unread ports.UnreadCounter, log zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, unread: unread, log: log}
}

// Send stores a message and bumps the recipient's unread counter.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, body string) (*domain.Message, error) {
	if body == "" || recipientID == "" || recipientID == senderID {
		return nil, domain.ErrValidation
	}

	msg, err := s.messages.Insert(ctx, &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.unread.Incr(ctx, recipientID, unreadMessages); err != nil {
		s.log.Warn().Err(err).Str("user_id", recipientID).Msg("unread counter incr failed")
	}
	return msg, nil
}

// Conversation returns the thread between the caller and peer, optionally
// limited to messages after since (the polling cursor).
func (s *MessageService) Conversation(ctx context.Context, callerID, peerID string, since time.Time) ([]domain.Message, error) {
	return s.messages.Conversation(ctx, callerID, peerID, since)
}

// MarkRead stamps the peer's messages to the caller as read and resets the
// caller's unread counter.
func (s *MessageService) MarkRead(ctx context.Context, callerID, peerID string) error {
	if err := s.messages.MarkRead(ctx, callerID, peerID, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.unread.Reset(ctx, callerID, unreadMessages); err != nil {
		s.log.Warn().Err(err).Str("user_id", callerID).Msg("unread counter reset failed")
	}
	return nil
}

// UnreadCount returns the caller's cached unread message count.
func (s *MessageService) UnreadCount(ctx context.Context, callerID string) int64 {
	n, err := s.unread.Get(ctx, callerID, unreadMessages)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", callerID).Msg("unread counter read failed")
		return 0
	}
	return n
}
