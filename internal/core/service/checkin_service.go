package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// CheckInService records athlete self-reports and notifies the trainer.
type CheckInService struct {
	checkins ports.CheckInRepository
	clients  ports.ClientRepository
	notify   *NotificationService
	log      zerolog.Logger
}

func NewCheckInService(checkins ports.CheckInRepository, clients ports.ClientRepository, notify *NotificationService, log zerolog.Logger) *CheckInService {
	return &CheckInService{checkins: checkins, clients: clients, notify: notify, log: log}
}

// Submit stores the check-in, deriving BMI from the profile height when a
// weight is reported.
func (s *CheckInService) Submit(ctx context.Context, clientID string, ci domain.CheckIn) (*domain.CheckIn, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ci.ClientID = clientID
	ci.CreatedAt = now
	if ci.Date.IsZero() {
		ci.Date = now
	}
	if ci.WeightKg > 0 && client.HeightCm > 0 {
		ci.BMI = domain.BMI(ci.WeightKg, client.HeightCm)
	}

	created, err := s.checkins.Insert(ctx, &ci)
	if err != nil {
		return nil, err
	}

	if client.TrainerID != "" {
		s.notify.Notify(ctx, client.TrainerID, "checkin", client.Name+" submitted a check-in", "")
	}
	return created, nil
}

// List returns an athlete's check-ins. Athletes only read their own; trainers
// only those of athletes they manage.
func (s *CheckInService) List(ctx context.Context, clientID, callerID, callerRole string) ([]domain.CheckIn, error) {
	if callerRole == domain.RoleClient {
		if clientID != callerID {
			return nil, domain.ErrForbidden
		}
	} else {
		client, err := s.clients.FindByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if client.TrainerID != callerID {
			return nil, domain.ErrForbidden
		}
	}
	return s.checkins.ListByClient(ctx, clientID)
}
