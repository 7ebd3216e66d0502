package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// FeedbackService lets athletes rate their coaching and trainers read it.
type FeedbackService struct {
	feedback ports.FeedbackRepository
	clients  ports.ClientRepository
	log      zerolog.Logger
}

func NewFeedbackService(feedback ports.FeedbackRepository, clients ports.ClientRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{feedback: feedback, clients: clients, log: log}
}

// Submit stores feedback from an athlete, addressed to their own trainer.
func (s *FeedbackService) Submit(ctx context.Context, clientID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrValidation
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return s.feedback.Insert(ctx, &domain.Feedback{
		ClientID:  clientID,
		TrainerID: client.TrainerID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})
}

// List returns feedback addressed to the trainer.
func (s *FeedbackService) List(ctx context.Context, trainerID string) ([]domain.Feedback, error) {
	return s.feedback.ListByTrainer(ctx, trainerID)
}
