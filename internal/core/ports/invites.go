package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// InviteRepository persists invites.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) (*domain.Invite, error)
	FindByCode(ctx context.Context, code string) (*domain.Invite, error)
	FindByToken(ctx context.Context, token string) (*domain.Invite, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Invite, error)
	Delete(ctx context.Context, id, trainerID string) error
	// ExpireStale flips pending invites past their deadline to expired and
	// returns how many were affected.
	ExpireStale(ctx context.Context) (int64, error)
}
