package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// ContentService distributes trainer-authored material to athletes.
type ContentService struct {
	content ports.ContentRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewContentService(content ports.ContentRepository, clients ports.ClientRepository, log zerolog.Logger) *ContentService {
	return &ContentService{content: content, clients: clients, log: log}
}

func (s *ContentService) Create(ctx context.Context, trainerID string, item domain.ContentItem) (*domain.ContentItem, error) {
	now := time.Now().UTC()
	item.TrainerID = trainerID
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.content.Create(ctx, &item)
}

func (s *ContentService) ListForTrainer(ctx context.Context, trainerID string) ([]domain.ContentItem, error) {
	return s.content.ListByTrainer(ctx, trainerID)
}

// ListForClient returns the material the athlete's trainer shared with them.
func (s *ContentService) ListForClient(ctx context.Context, clientID string) ([]domain.ContentItem, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.content.ListForClient(ctx, client.TrainerID, clientID)
}

func (s *ContentService) Update(ctx context.Context, id, trainerID string, in domain.ContentItem) (*domain.ContentItem, error) {
	item, err := s.owned(ctx, id, trainerID)
	if err != nil {
		return nil, err
	}
	item.Title = in.Title
	item.Kind = in.Kind
	item.URL = in.URL
	item.Audience = in.Audience
	item.UpdatedAt = time.Now().UTC()
	if err := s.content.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ContentService) Delete(ctx context.Context, id, trainerID string) error {
	if _, err := s.owned(ctx, id, trainerID); err != nil {
		return err
	}
	return s.content.Delete(ctx, id)
}

func (s *ContentService) owned(ctx context.Context, id, trainerID string) (*domain.ContentItem, error) {
	item, err := s.content.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.TrainerID != trainerID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}
