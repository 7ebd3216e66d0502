package domain

import (
	"testing"
	"time"
)

func TestInviteRedeemable(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name   string
		invite Invite
		want   error
	}{
		{"pending and current", Invite{Status: InvitePending, ExpiresAt: now.Add(time.Hour)}, nil},
		{"already accepted", Invite{Status: InviteAccepted, ExpiresAt: now.Add(time.Hour)}, ErrInviteAccepted},
		{"marked expired", Invite{Status: InviteExpired, ExpiresAt: now.Add(time.Hour)}, ErrInviteExpired},
		{"deadline passed but not yet swept", Invite{Status: InvitePending, ExpiresAt: now.Add(-time.Minute)}, ErrInviteExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.invite.Redeemable(now); got != tc.want {
				t.Fatalf("Redeemable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInviteTransitions(t *testing.T) {
	if !InvitePending.CanTransitionTo(InviteAccepted) {
		t.Fatal("pending should accept")
	}
	if !InvitePending.CanTransitionTo(InviteExpired) {
		t.Fatal("pending should expire")
	}
	if InviteAccepted.CanTransitionTo(InviteExpired) {
		t.Fatal("accepted is terminal")
	}
	if InviteExpired.CanTransitionTo(InviteAccepted) {
		t.Fatal("expired is terminal")
	}
}

func TestBookingTransitions(t *testing.T) {
	if !BookingOpen.CanTransitionTo(BookingBooked) {
		t.Fatal("open slot should be bookable")
	}
	if !BookingBooked.CanTransitionTo(BookingOpen) {
		t.Fatal("athlete cancellation should reopen a booked slot")
	}
	if !BookingBooked.CanTransitionTo(BookingCompleted) {
		t.Fatal("booked slot should complete")
	}
	if BookingOpen.CanTransitionTo(BookingCompleted) {
		t.Fatal("open slot must not complete")
	}
	if BookingCompleted.CanTransitionTo(BookingOpen) {
		t.Fatal("completed is terminal")
	}
}

func TestDeletedRole(t *testing.T) {
	if DeletedRole(RoleClient) != "deleted_client" {
		t.Fatalf("DeletedRole = %q", DeletedRole(RoleClient))
	}
	// Idempotent: already-deleted roles keep a single prefix.
	if DeletedRole("deleted_client") != "deleted_client" {
		t.Fatalf("DeletedRole not idempotent: %q", DeletedRole("deleted_client"))
	}

	u := User{Role: DeletedRole(RoleEmployee)}
	if !u.Disabled() {
		t.Fatal("deleted role should disable the identity")
	}
}

func TestHomePath(t *testing.T) {
	cases := map[string]string{
		RoleAdmin:      "/dashboard",
		RoleEmployee:   "/dashboard",
		RoleClient:     "/athlete",
		RoleSuperadmin: "/admin",
	}
	for role, want := range cases {
		if got := HomePath(role); got != want {
			t.Errorf("HomePath(%s) = %s, want %s", role, got, want)
		}
	}
}
