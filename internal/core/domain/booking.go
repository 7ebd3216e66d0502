package domain

import "time"

// BookingStatus is the lifecycle state of a booking slot.
type BookingStatus string

const (
	BookingOpen      BookingStatus = "open"
	BookingBooked    BookingStatus = "booked"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingOpen:   {BookingBooked, BookingCancelled},
	BookingBooked: {BookingCompleted, BookingCancelled, BookingOpen},
}

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookingSlot is a session slot published by a trainer. ClientID is set while
// the slot is booked.
type BookingSlot struct {
	ID        string        `json:"id"`
	TrainerID string        `json:"trainer_id"`
	ClientID  string        `json:"client_id,omitempty"`
	StartsAt  time.Time     `json:"starts_at"`
	EndsAt    time.Time     `json:"ends_at"`
	Status    BookingStatus `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
