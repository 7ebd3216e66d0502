package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// TrainingPlanService authors and assigns training plans. Clients never get
// write access; athletes read the plans assigned to them.
type TrainingPlanService struct {
	plans   ports.TrainingPlanRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewTrainingPlanService(plans ports.TrainingPlanRepository, clients ports.ClientRepository, log zerolog.Logger) *TrainingPlanService {
	return &TrainingPlanService{plans: plans, clients: clients, log: log}
}

// Create authors a plan for one of the trainer's athletes.
func (s *TrainingPlanService) Create(ctx context.Context, trainerID string, plan domain.TrainingPlan) (*domain.TrainingPlan, error) {
	if err := s.ownsClient(ctx, trainerID, plan.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan.TrainerID = trainerID
	plan.CreatedAt = now
	plan.UpdatedAt = now

	created, err := s.plans.Create(ctx, &plan)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("plan_id", created.ID).Str("client_id", plan.ClientID).Msg("training plan created")
	return created, nil
}

// Get returns a plan the caller may see: its author or its assignee.
func (s *TrainingPlanService) Get(ctx context.Context, id, callerID, callerRole string) (*domain.TrainingPlan, error) {
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

func (s *TrainingPlanService) ListByTrainer(ctx context.Context, trainerID string) ([]domain.TrainingPlan, error) {
	return s.plans.ListByTrainer(ctx, trainerID)
}

func (s *TrainingPlanService) ListByClient(ctx context.Context, clientID string) ([]domain.TrainingPlan, error) {
	return s.plans.ListByClient(ctx, clientID)
}

// Update replaces the mutable fields of a plan the trainer authored.
func (s *TrainingPlanService) Update(ctx context.Context, id, trainerID string, in domain.TrainingPlan) (*domain.TrainingPlan, error) {
	plan, err := s.Get(ctx, id, trainerID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	plan.Name = in.Name
	plan.Description = in.Description
	plan.Sessions = in.Sessions
	plan.Active = in.Active
	plan.UpdatedAt = time.Now().UTC()

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *TrainingPlanService) Delete(ctx context.Context, id, trainerID string) error {
	if _, err := s.Get(ctx, id, trainerID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}

func (s *TrainingPlanService) ownsClient(ctx context.Context, trainerID, clientID string) error {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.TrainerID != trainerID {
		return domain.ErrForbidden
	}
	return nil
}
