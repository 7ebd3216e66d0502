package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// ClientRepository persists athlete profiles.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	ListByTrainer(ctx context.Context, trainerID string, includeDeleted bool) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	// UpdatePassword rotates the hash on a legacy profile row that carries
	// its own credential.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SoftDelete(ctx context.Context, id string) error
}

// BodyMetricRepository persists body composition records.
type BodyMetricRepository interface {
	Insert(ctx context.Context, metric *domain.BodyMetric) error
	ListByClient(ctx context.Context, clientID string) ([]domain.BodyMetric, error)
}

// ClientUpdateInput carries the mutable profile fields.
type ClientUpdateInput struct {
	Name     string
	Phone    string
	HeightCm float64
	WeightKg float64
	Goals    string
}
