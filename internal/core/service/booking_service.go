package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// BookingService manages trainer-published session slots and athlete bookings.
// Slot mutations by trainers are scoped to slots they own.
type BookingService struct {
	bookings ports.BookingRepository
	clients  ports.ClientRepository
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, clients ports.ClientRepository, audit ports.AuditSink, log zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, clients: clients, audit: audit, log: log}
}

// CreateSlot publishes an open slot for the trainer.
func (s *BookingService) CreateSlot(ctx context.Context, trainerID string, startsAt, endsAt time.Time, notes string) (*domain.BookingSlot, error) {
	if !endsAt.After(startsAt) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	slot := &domain.BookingSlot{
		TrainerID: trainerID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Status:    domain.BookingOpen,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.bookings.Create(ctx, slot)
}

// ListForTrainer returns the trainer's slots, booked or not.
func (s *BookingService) ListForTrainer(ctx context.Context, trainerID string) ([]domain.BookingSlot, error) {
	return s.bookings.ListByTrainer(ctx, trainerID)
}

// ListForClient returns the athlete's bookings plus their trainer's open slots.
func (s *BookingService) ListForClient(ctx context.Context, clientID string) ([]domain.BookingSlot, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	own, err := s.bookings.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	open, err := s.bookings.ListOpenByTrainer(ctx, client.TrainerID)
	if err != nil {
		return nil, err
	}
	return append(own, open...), nil
}

// Book claims an open slot for the athlete. The slot must belong to the
// athlete's own trainer.
func (s *BookingService) Book(ctx context.Context, slotID, clientID string) (*domain.BookingSlot, error) {
	slot, err := s.bookings.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if slot.TrainerID != client.TrainerID {
		return nil, domain.ErrForbidden
	}
	if !slot.Status.CanTransitionTo(domain.BookingBooked) {
		return nil, domain.ErrSlotUnavailable
	}

	slot.Status = domain.BookingBooked
	slot.ClientID = clientID
	slot.UpdatedAt = time.Now().UTC()
	if err := s.bookings.Update(ctx, slot); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    clientID,
		ActorRole:  domain.RoleClient,
		Action:     "booking_book",
		Resource:   "booking_slot",
		ResourceID: slot.ID,
		At:         slot.UpdatedAt,
	})
	return slot, nil
}

// Cancel releases a slot. Trainers may cancel slots they own; athletes only
// bookings they hold. Cancelling a booked slot reopens it for the trainer's
// other athletes; trainers cancelling outright close the slot.
func (s *BookingService) Cancel(ctx context.Context, slotID, callerID, callerRole string) (*domain.BookingSlot, error) {
	slot, err := s.bookings.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	next := domain.BookingCancelled
	switch callerRole {
	case domain.RoleClient:
		if slot.ClientID != callerID {
			return nil, domain.ErrForbidden
		}
		next = domain.BookingOpen
	default:
		if slot.TrainerID != callerID {
			return nil, domain.ErrForbidden
		}
	}

	if !slot.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	slot.Status = next
	if next == domain.BookingOpen {
		slot.ClientID = ""
	}
	slot.UpdatedAt = time.Now().UTC()
	if err := s.bookings.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Complete marks a booked session as held.
func (s *BookingService) Complete(ctx context.Context, slotID, trainerID string) (*domain.BookingSlot, error) {
	slot, err := s.bookings.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.TrainerID != trainerID {
		return nil, domain.ErrForbidden
	}
	if !slot.Status.CanTransitionTo(domain.BookingCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	slot.Status = domain.BookingCompleted
	slot.UpdatedAt = time.Now().UTC()
	if err := s.bookings.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteSlot removes a slot the trainer owns.
func (s *BookingService) DeleteSlot(ctx context.Context, slotID, trainerID string) error {
	slot, err := s.bookings.FindByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.TrainerID != trainerID {
		return domain.ErrForbidden
	}
	return s.bookings.Delete(ctx, slotID)
}
