package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

func TestInviteCreate(t *testing.T) {
	var stored *domain.Invite
	invites := &stubInvites{
		create: func(_ context.Context, invite *domain.Invite) (*domain.Invite, error) {
			stored = invite
			cp := *invite
			cp.ID = "inv1"
			return &cp, nil
		},
	}
	svc := NewInviteService(invites, zerolog.Nop())

	created, err := svc.Create(context.Background(), "t1", "new@gym.pt")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.InvitePending {
		t.Fatalf("status %q", created.Status)
	}
	if len(stored.Code) != 6 {
		t.Fatalf("code %q, want 6 digits", stored.Code)
	}
	for _, r := range stored.Code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit", stored.Code)
		}
	}
	if stored.Token == "" {
		t.Fatal("link token missing")
	}
	want := time.Now().UTC().Add(domain.InviteTTL)
	if stored.ExpiresAt.Before(want.Add(-time.Minute)) || stored.ExpiresAt.After(want.Add(time.Minute)) {
		t.Fatalf("expiry %v not near %v", stored.ExpiresAt, want)
	}
}

func TestInviteValidate_ByToken(t *testing.T) {
	invites := &stubInvites{
		findByToken: func(_ context.Context, tok string) (*domain.Invite, error) {
			return &domain.Invite{ID: "inv1", Token: tok, Status: domain.InvitePending, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	svc := NewInviteService(invites, zerolog.Nop())

	invite, err := svc.Validate(context.Background(), "", "link-token")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if invite.ID != "inv1" {
		t.Fatalf("invite %+v", invite)
	}
}

func TestInviteValidate_NeitherIdentifier(t *testing.T) {
	svc := NewInviteService(&stubInvites{}, zerolog.Nop())

	if _, err := svc.Validate(context.Background(), "", ""); err != domain.ErrInviteNotFound {
		t.Fatalf("got %v, want ErrInviteNotFound", err)
	}
}
