package domain

import "time"

// InviteStatus is the lifecycle state of an invite.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteExpired  InviteStatus = "expired"
)

// InviteTTL is how long an invite stays redeemable.
const InviteTTL = 7 * 24 * time.Hour

// inviteTransitions defines the allowed state machine transitions.
// An invite leaves pending exactly once.
var inviteTransitions = map[InviteStatus][]InviteStatus{
	InvitePending: {InviteAccepted, InviteExpired},
}

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s InviteStatus) CanTransitionTo(next InviteStatus) bool {
	for _, allowed := range inviteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invite is a single-use, time-boxed credential tying a trainer to an email
// address. It is redeemed during onboarding via either the 6-digit code or the
// opaque link token.
type Invite struct {
	ID         string       `json:"id"`
	TrainerID  string       `json:"trainer_id"`
	Email      string       `json:"email"`
	Code       string       `json:"code"`
	Token      string       `json:"token"`
	Status     InviteStatus `json:"status"`
	ExpiresAt  time.Time    `json:"expires_at"`
	AcceptedAt *time.Time   `json:"accepted_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Redeemable reports whether the invite can still be consumed at the given time.
func (i *Invite) Redeemable(now time.Time) error {
	switch i.Status {
	case InviteAccepted:
		return ErrInviteAccepted
	case InviteExpired:
		return ErrInviteExpired
	}
	if now.After(i.ExpiresAt) {
		return ErrInviteExpired
	}
	return nil
}
