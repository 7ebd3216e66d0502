package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// TrainingPlanRepository persists training plans.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (*domain.TrainingPlan, error)
	FindByID(ctx context.Context, id string) (*domain.TrainingPlan, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.TrainingPlan, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id string) error
}

// NutritionPlanRepository persists nutrition plans.
type NutritionPlanRepository interface {
	Create(ctx context.Context, plan *domain.NutritionPlan) (*domain.NutritionPlan, error)
	FindByID(ctx context.Context, id string) (*domain.NutritionPlan, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.NutritionPlan, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.NutritionPlan, error)
	Update(ctx context.Context, plan *domain.NutritionPlan) error
	Delete(ctx context.Context, id string) error
}
