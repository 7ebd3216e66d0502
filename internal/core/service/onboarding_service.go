package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/joaaoazul/siganext/internal/api/metrics"
	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// OnboardingService turns a pending invite into a linked Client+User pair in
// one transaction: profile row, login identity, cross-link, invite acceptance
// and optionally an initial body composition record. Failure of any step
// rolls back all of it.
type OnboardingService struct {
	invites *InviteService
	repo    ports.OnboardingRepository
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewOnboardingService(invites *InviteService, repo ports.OnboardingRepository, audit ports.AuditSink, log zerolog.Logger) *OnboardingService {
	return &OnboardingService{invites: invites, repo: repo, audit: audit, log: log}
}

// Complete redeems the invite and creates the athlete.
func (s *OnboardingService) Complete(ctx context.Context, input ports.OnboardingInput) (*ports.OnboardingResult, error) {
	if input.Name == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	invite, err := s.invites.Validate(ctx, input.InviteCode, input.InviteToken)
	if err != nil {
		metrics.OnboardingsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &ports.OnboardingResult{}

	err = s.repo.InTransaction(ctx, func(ctx context.Context, tx ports.OnboardingTx) error {
		clientID, err := tx.CreateClient(ctx, &domain.Client{
			TrainerID: invite.TrainerID,
			Email:     invite.Email,
			Name:      input.Name,
			Phone:     input.Phone,
			BirthDate: input.BirthDate,
			Sex:       input.Sex,
			HeightCm:  input.HeightCm,
			WeightKg:  input.WeightKg,
			Goals:     input.Goals,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		userID, err := tx.CreateUser(ctx, &domain.User{
			Email:        invite.Email,
			Name:         input.Name,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			ClientID:     clientID,
			TrainerID:    invite.TrainerID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		if err := tx.LinkClientUser(ctx, clientID, userID); err != nil {
			return err
		}

		if err := tx.MarkInviteAccepted(ctx, invite.ID, now); err != nil {
			return err
		}

		if metric := initialMetric(clientID, input, now); metric != nil {
			if err := tx.InsertBodyMetric(ctx, metric); err != nil {
				return err
			}
			result.Metric = metric
		}

		result.ClientID = clientID
		result.UserID = userID
		return nil
	})
	if err != nil {
		metrics.OnboardingsTotal.WithLabelValues("failure").Inc()
		s.log.Error().Err(err).Str("invite_id", invite.ID).Msg("onboarding transaction failed")
		return nil, err
	}

	metrics.OnboardingsTotal.WithLabelValues("success").Inc()
	s.audit.Record(domain.AuditEntry{
		ActorID:    result.ClientID,
		ActorRole:  domain.RoleClient,
		Action:     "onboarding",
		Resource:   "client",
		ResourceID: result.ClientID,
		At:         now,
	})
	s.log.Info().Str("client_id", result.ClientID).Str("trainer_id", invite.TrainerID).Msg("athlete onboarded")

	return result, nil
}

// initialMetric derives BMI and BMR from the self-reported measurements.
// Returns nil when weight or height is missing.
func initialMetric(clientID string, input ports.OnboardingInput, now time.Time) *domain.BodyMetric {
	if input.WeightKg <= 0 || input.HeightCm <= 0 {
		return nil
	}
	return &domain.BodyMetric{
		ClientID:   clientID,
		WeightKg:   input.WeightKg,
		HeightCm:   input.HeightCm,
		BMI:        domain.BMI(input.WeightKg, input.HeightCm),
		BMR:        domain.BMR(input.WeightKg, input.HeightCm, domain.Age(input.BirthDate, now), input.Sex),
		RecordedAt: now,
	}
}
