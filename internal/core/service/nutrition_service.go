package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// NutritionPlanService mirrors TrainingPlanService for nutrition plans.
type NutritionPlanService struct {
	plans   ports.NutritionPlanRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewNutritionPlanService(plans ports.NutritionPlanRepository, clients ports.ClientRepository, log zerolog.Logger) *NutritionPlanService {
	return &NutritionPlanService{plans: plans, clients: clients, log: log}
}

func (s *NutritionPlanService) Create(ctx context.Context, trainerID string, plan domain.NutritionPlan) (*domain.NutritionPlan, error) {
	client, err := s.clients.FindByID(ctx, plan.ClientID)
	if err != nil {
		return nil, err
	}
	if client.TrainerID != trainerID {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	plan.TrainerID = trainerID
	plan.CreatedAt = now
	plan.UpdatedAt = now

	created, err := s.plans.Create(ctx, &plan)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("plan_id", created.ID).Str("client_id", plan.ClientID).Msg("nutrition plan created")
	return created, nil
}

func (s *NutritionPlanService) Get(ctx context.Context, id, callerID, callerRole string) (*domain.NutritionPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerRole == domain.RoleClient {
		if plan.ClientID != callerID {
			return nil, domain.ErrForbidden
		}
	} else if plan.TrainerID != callerID {
		return nil, domain.ErrForbidden
	}
	return plan, nil
}

func (s *NutritionPlanService) ListByTrainer(ctx context.Context, trainerID string) ([]domain.NutritionPlan, error) {
	return s.plans.ListByTrainer(ctx, trainerID)
}

func (s *NutritionPlanService) ListByClient(ctx context.Context, clientID string) ([]domain.NutritionPlan, error) {
	return s.plans.ListByClient(ctx, clientID)
}

func (s *NutritionPlanService) Update(ctx context.Context, id, trainerID string, in domain.NutritionPlan) (*domain.NutritionPlan, error) {
	plan, err := s.Get(ctx, id, trainerID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	plan.Name = in.Name
	plan.CaloriesKcal = in.CaloriesKcal
	plan.Macros = in.Macros
	plan.Meals = in.Meals
	plan.Active = in.Active
	plan.UpdatedAt = time.Now().UTC()

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *NutritionPlanService) Delete(ctx context.Context, id, trainerID string) error {
	if _, err := s.Get(ctx, id, trainerID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}
