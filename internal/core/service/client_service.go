package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// ClientService manages athlete profiles on behalf of their trainer.
// Every mutation is scoped by the owning trainer id.
type ClientService struct {
	clients ports.ClientRepository
	users   ports.UserRepository
	metrics ports.BodyMetricRepository
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, users ports.UserRepository, metrics ports.BodyMetricRepository, audit ports.AuditSink, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, users: users, metrics: metrics, audit: audit, log: log}
}

// Create adds a profile-only athlete managed by the trainer. No login identity
// is created; the athlete can claim one later through invite onboarding, which
// links back to this profile by email.
func (s *ClientService) Create(ctx context.Context, trainerID string, client domain.Client) (*domain.Client, error) {
	if client.Name == "" || client.Email == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	client.TrainerID = trainerID
	client.UserID = ""
	client.CreatedAt = now
	client.UpdatedAt = now

	created, err := s.clients.Create(ctx, &client)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    trainerID,
		ActorRole:  domain.RoleAdmin,
		Action:     "client_create",
		Resource:   "client",
		ResourceID: created.ID,
		At:         now,
	})
	return created, nil
}

// List returns the trainer's active athletes.
func (s *ClientService) List(ctx context.Context, trainerID string) ([]domain.Client, error) {
	return s.clients.ListByTrainer(ctx, trainerID, false)
}

// Get returns one athlete, enforcing ownership.
func (s *ClientService) Get(ctx context.Context, id, trainerID string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.TrainerID != trainerID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

// GetOwn returns the athlete's own profile.
func (s *ClientService) GetOwn(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, clientID)
}

// Update mutates profile fields, enforcing ownership.
func (s *ClientService) Update(ctx context.Context, id, trainerID string, input ports.ClientUpdateInput) (*domain.Client, error) {
	client, err := s.Get(ctx, id, trainerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		client.Name = input.Name
	}
	if input.Phone != "" {
		client.Phone = input.Phone
	}
	if input.HeightCm > 0 {
		client.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		client.WeightKg = input.WeightKg
	}
	if input.Goals != "" {
		client.Goals = input.Goals
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// SoftDelete retains the profile row, stamps deletedAt, and disables the
// linked login identity by flipping its role to the deleted sentinel. The
// audit trail survives because nothing is removed.
func (s *ClientService) SoftDelete(ctx context.Context, id, trainerID string, actor domain.AuditEntry) error {
	client, err := s.Get(ctx, id, trainerID)
	if err != nil {
		return err
	}

	if err := s.clients.SoftDelete(ctx, client.ID); err != nil {
		return err
	}

	if client.UserID != "" {
		if err := s.users.UpdateRole(ctx, client.UserID, domain.DeletedRole(domain.RoleClient)); err != nil {
			// Profile already flagged; login stays enabled until retried.
			s.log.Error().Err(err).Str("user_id", client.UserID).Msg("disable linked login failed")
			return err
		}
	}

	actor.Action = "client_delete"
	actor.Resource = "client"
	actor.ResourceID = client.ID
	actor.At = time.Now().UTC()
	s.audit.Record(actor)

	s.log.Info().Str("client_id", client.ID).Str("trainer_id", trainerID).Msg("client soft-deleted")
	return nil
}

// MetricHistory lists the athlete's body composition records. Trainers must
// own the athlete; athletes may only read their own history.
func (s *ClientService) MetricHistory(ctx context.Context, clientID, callerID, callerRole string) ([]domain.BodyMetric, error) {
	if callerRole == domain.RoleClient {
		if clientID != callerID {
			return nil, domain.ErrForbidden
		}
	} else if _, err := s.Get(ctx, clientID, callerID); err != nil {
		return nil, err
	}
	return s.metrics.ListByClient(ctx, clientID)
}
