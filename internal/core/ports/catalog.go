package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// ExerciseRepository persists the shared exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, ex *domain.Exercise) (*domain.Exercise, error)
	FindByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, ex *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

// FoodRepository persists the shared food catalog.
type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) (*domain.Food, error)
	FindByID(ctx context.Context, id string) (*domain.Food, error)
	List(ctx context.Context) ([]domain.Food, error)
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, id string) error
}
