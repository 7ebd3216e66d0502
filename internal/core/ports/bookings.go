package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// BookingRepository persists booking slots.
type BookingRepository interface {
	Create(ctx context.Context, slot *domain.BookingSlot) (*domain.BookingSlot, error)
	FindByID(ctx context.Context, id string) (*domain.BookingSlot, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.BookingSlot, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.BookingSlot, error)
	ListOpenByTrainer(ctx context.Context, trainerID string) ([]domain.BookingSlot, error)
	Update(ctx context.Context, slot *domain.BookingSlot) error
	Delete(ctx context.Context, id string) error
}
