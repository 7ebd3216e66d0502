package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/api/metrics"
	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// InviteService issues and validates single-use athlete invites.
type InviteService struct {
	invites ports.InviteRepository
	log     zerolog.Logger
}

func NewInviteService(invites ports.InviteRepository, log zerolog.Logger) *InviteService {
	return &InviteService{invites: invites, log: log}
}

// Create issues a 7-day invite for the given email, redeemable by 6-digit
// code or opaque link token.
func (s *InviteService) Create(ctx context.Context, trainerID, email string) (*domain.Invite, error) {
	now := time.Now().UTC()
	invite := &domain.Invite{
		TrainerID: trainerID,
		Email:     email,
		Code:      generateCode(),
		Token:     uuid.NewString(),
		Status:    domain.InvitePending,
		ExpiresAt: now.Add(domain.InviteTTL),
		CreatedAt: now,
	}

	created, err := s.invites.Create(ctx, invite)
	if err != nil {
		return nil, err
	}

	metrics.InvitesIssuedTotal.Inc()
	s.log.Info().Str("trainer_id", trainerID).Str("email", email).Msg("invite issued")
	return created, nil
}

// Validate resolves an invite by code or token and checks it is redeemable.
func (s *InviteService) Validate(ctx context.Context, code, linkToken string) (*domain.Invite, error) {
	invite, err := s.find(ctx, code, linkToken)
	if err != nil {
		return nil, err
	}
	if err := invite.Redeemable(time.Now().UTC()); err != nil {
		return nil, err
	}
	return invite, nil
}

func (s *InviteService) find(ctx context.Context, code, linkToken string) (*domain.Invite, error) {
	if code != "" {
		return s.invites.FindByCode(ctx, code)
	}
	if linkToken != "" {
		return s.invites.FindByToken(ctx, linkToken)
	}
	return nil, domain.ErrInviteNotFound
}

// List returns the trainer's invites, newest first.
func (s *InviteService) List(ctx context.Context, trainerID string) ([]domain.Invite, error) {
	return s.invites.ListByTrainer(ctx, trainerID)
}

// Revoke removes a pending invite owned by the trainer.
func (s *InviteService) Revoke(ctx context.Context, id, trainerID string) error {
	return s.invites.Delete(ctx, id, trainerID)
}

// ExpireStale is the hourly sweep flipping overdue pending invites to expired.
func (s *InviteService) ExpireStale(ctx context.Context) {
	n, err := s.invites.ExpireStale(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("invite expiry sweep failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("expired", n).Msg("invite expiry sweep")
	}
}

// generateCode returns a random 6-digit numeric code.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
