package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// ContentRepository persists shared content items.
type ContentRepository interface {
	Create(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error)
	FindByID(ctx context.Context, id string) (*domain.ContentItem, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.ContentItem, error)
	// ListForClient returns the trainer's items whose audience is empty or
	// includes the client.
	ListForClient(ctx context.Context, trainerID, clientID string) ([]domain.ContentItem, error)
	Update(ctx context.Context, item *domain.ContentItem) error
	Delete(ctx context.Context, id string) error
}
