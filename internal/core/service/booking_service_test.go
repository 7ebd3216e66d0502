package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/infrastructure/queue"
)

func bookingFixture(slot *domain.BookingSlot, client *domain.Client) (*BookingService, *stubBookings) {
	bookings := &stubBookings{slots: map[string]*domain.BookingSlot{}}
	if slot != nil {
		bookings.slots[slot.ID] = slot
	}
	clients := &stubClients{
		findByID: func(_ context.Context, id string) (*domain.Client, error) {
			if client == nil || client.ID != id {
				return nil, domain.ErrClientNotFound
			}
			return client, nil
		},
	}
	return NewBookingService(bookings, clients, queue.NopSink{}, zerolog.Nop()), bookings
}

func openSlot() *domain.BookingSlot {
	return &domain.BookingSlot{ID: "s1", TrainerID: "t1", Status: domain.BookingOpen}
}

func TestBook(t *testing.T) {
	svc, bookings := bookingFixture(openSlot(), &domain.Client{ID: "c1", TrainerID: "t1"})

	slot, err := svc.Book(context.Background(), "s1", "c1")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if slot.Status != domain.BookingBooked || slot.ClientID != "c1" {
		t.Fatalf("slot after booking: %+v", slot)
	}
	if bookings.slots["s1"].Status != domain.BookingBooked {
		t.Fatal("booking not persisted")
	}
}

func TestBook_ForeignTrainer(t *testing.T) {
	svc, _ := bookingFixture(openSlot(), &domain.Client{ID: "c1", TrainerID: "other"})

	if _, err := svc.Book(context.Background(), "s1", "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestBook_AlreadyBooked(t *testing.T) {
	slot := openSlot()
	slot.Status = domain.BookingBooked
	slot.ClientID = "c2"
	svc, _ := bookingFixture(slot, &domain.Client{ID: "c1", TrainerID: "t1"})

	if _, err := svc.Book(context.Background(), "s1", "c1"); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("got %v, want ErrSlotUnavailable", err)
	}
}

func TestCancel_AthleteReopensSlot(t *testing.T) {
	slot := openSlot()
	slot.Status = domain.BookingBooked
	slot.ClientID = "c1"
	svc, _ := bookingFixture(slot, nil)

	updated, err := svc.Cancel(context.Background(), "s1", "c1", domain.RoleClient)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != domain.BookingOpen || updated.ClientID != "" {
		t.Fatalf("cancelled booking should reopen the slot: %+v", updated)
	}
}

func TestCancel_AthleteForeignBooking(t *testing.T) {
	slot := openSlot()
	slot.Status = domain.BookingBooked
	slot.ClientID = "c2"
	svc, _ := bookingFixture(slot, nil)

	if _, err := svc.Cancel(context.Background(), "s1", "c1", domain.RoleClient); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCancel_TrainerClosesSlot(t *testing.T) {
	svc, _ := bookingFixture(openSlot(), nil)

	updated, err := svc.Cancel(context.Background(), "s1", "t1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != domain.BookingCancelled {
		t.Fatalf("status %q, want cancelled", updated.Status)
	}
}

func TestComplete_OpenSlotRejected(t *testing.T) {
	svc, _ := bookingFixture(openSlot(), nil)

	if _, err := svc.Complete(context.Background(), "s1", "t1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestCreateSlot_RejectsInvertedWindow(t *testing.T) {
	svc, _ := bookingFixture(nil, nil)
	now := time.Now()

	if _, err := svc.CreateSlot(context.Background(), "t1", now, now.Add(-time.Hour), ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestListForClient_IncludesTrainersOpenSlots(t *testing.T) {
	bookings := &stubBookings{slots: map[string]*domain.BookingSlot{
		"s1": {ID: "s1", TrainerID: "t1", Status: domain.BookingBooked, ClientID: "c1"},
		"s2": {ID: "s2", TrainerID: "t1", Status: domain.BookingOpen},
		"s3": {ID: "s3", TrainerID: "t2", Status: domain.BookingOpen},
	}}
	clients := &stubClients{
		findByID: func(context.Context, string) (*domain.Client, error) {
			return &domain.Client{ID: "c1", TrainerID: "t1"}, nil
		},
	}
	svc := NewBookingService(bookings, clients, queue.NopSink{}, zerolog.Nop())

	slots, err := svc.ListForClient(context.Background(), "c1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want own booking plus trainer's open slot", len(slots))
	}
	for _, slot := range slots {
		if slot.TrainerID != "t1" {
			t.Fatalf("foreign trainer slot leaked: %+v", slot)
		}
	}
}
