package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// CatalogService manages the shared exercise and food catalogs. Writes are
// reserved to trainer-side roles; athletes read only.
type CatalogService struct {
	exercises ports.ExerciseRepository
	foods     ports.FoodRepository
	log       zerolog.Logger
}

func NewCatalogService(exercises ports.ExerciseRepository, foods ports.FoodRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{exercises: exercises, foods: foods, log: log}
}

func (s *CatalogService) CreateExercise(ctx context.Context, createdBy string, ex domain.Exercise) (*domain.Exercise, error) {
	now := time.Now().UTC()
	ex.CreatedBy = createdBy
	ex.CreatedAt = now
	ex.UpdatedAt = now
	return s.exercises.Create(ctx, &ex)
}

func (s *CatalogService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exercises.List(ctx)
}

func (s *CatalogService) UpdateExercise(ctx context.Context, id string, in domain.Exercise) (*domain.Exercise, error) {
	ex, err := s.exercises.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ex.Name = in.Name
	ex.MuscleGroup = in.MuscleGroup
	ex.Equipment = in.Equipment
	ex.VideoURL = in.VideoURL
	ex.UpdatedAt = time.Now().UTC()
	if err := s.exercises.Update(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *CatalogService) DeleteExercise(ctx context.Context, id string) error {
	return s.exercises.Delete(ctx, id)
}

func (s *CatalogService) CreateFood(ctx context.Context, createdBy string, food domain.Food) (*domain.Food, error) {
	now := time.Now().UTC()
	food.CreatedBy = createdBy
	food.CreatedAt = now
	food.UpdatedAt = now
	return s.foods.Create(ctx, &food)
}

func (s *CatalogService) ListFoods(ctx context.Context) ([]domain.Food, error) {
	return s.foods.List(ctx)
}

func (s *CatalogService) UpdateFood(ctx context.Context, id string, in domain.Food) (*domain.Food, error) {
	food, err := s.foods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	food.Name = in.Name
	food.KcalPer100g = in.KcalPer100g
	food.ProteinG = in.ProteinG
	food.CarbsG = in.CarbsG
	food.FatG = in.FatG
	food.UpdatedAt = time.Now().UTC()
	if err := s.foods.Update(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (s *CatalogService) DeleteFood(ctx context.Context, id string) error {
	return s.foods.Delete(ctx, id)
}
