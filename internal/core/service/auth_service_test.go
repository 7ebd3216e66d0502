package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/token"
	"github.com/joaaoazul/siganext/internal/infrastructure/queue"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func authService(users *stubUsers, clients *stubClients) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("test-secret", time.Hour, 0)
	return NewAuthService(users, clients, issuer, queue.NopSink{}, zerolog.Nop()), issuer
}

func TestLogin_Trainer(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email, Name: "Ana", Role: domain.RoleAdmin, PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	svc, issuer := authService(users, &stubClients{})

	signed, user, err := svc.Login(context.Background(), "ana@gym.pt", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("user id %q", user.ID)
	}

	claims, err := issuer.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID != "u1" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims %+v", claims)
	}
}

func TestLogin_ClientTokenCarriesProfileID(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u2", Email: email, Role: domain.RoleClient, ClientID: "c9", PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	clients := &stubClients{
		findByID: func(_ context.Context, id string) (*domain.Client, error) {
			if id != "c9" {
				t.Fatalf("looked up %q", id)
			}
			return &domain.Client{ID: "c9", TrainerID: "t1"}, nil
		},
	}
	svc, issuer := authService(users, clients)

	signed, _, err := svc.Login(context.Background(), "athlete@gym.pt", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, _ := issuer.Parse(signed)
	if claims.ID != "c9" {
		t.Fatalf("athlete token should carry the profile id, got %q", claims.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Role: domain.RoleAdmin, PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	svc, _ := authService(users, &stubClients{})

	if _, _, err := svc.Login(context.Background(), "ana@gym.pt", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Role: domain.DeletedRole(domain.RoleClient), PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	svc, _ := authService(users, &stubClients{})

	if _, _, err := svc.Login(context.Background(), "gone@gym.pt", "secret"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("got %v, want ErrAccountDisabled", err)
	}
}

func TestLogin_LegacyClientFallback(t *testing.T) {
	// No User row for the email; the Client row links back to the identity.
	users := &stubUsers{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			if id != "u7" {
				t.Fatalf("looked up user %q", id)
			}
			return &domain.User{ID: "u7", Email: "old@gym.pt", Role: domain.RoleClient, PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	clients := &stubClients{
		findByEmail: func(_ context.Context, email string) (*domain.Client, error) {
			return &domain.Client{ID: "c7", UserID: "u7", Email: email, TrainerID: "t1"}, nil
		},
	}
	svc, issuer := authService(users, clients)

	signed, _, err := svc.Login(context.Background(), "old@gym.pt", "secret")
	if err != nil {
		t.Fatalf("legacy login: %v", err)
	}
	claims, _ := issuer.Parse(signed)
	if claims.ID != "c7" {
		t.Fatalf("legacy athlete token id %q, want c7", claims.ID)
	}
}

func TestLogin_LegacyClientWithoutUserRow(t *testing.T) {
	// Oldest athletes have no User row at all; the profile row carries the
	// bcrypt hash and authenticates on its own.
	users := &stubUsers{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	legacy := &domain.Client{ID: "c3", TrainerID: "t1", Email: "old@gym.pt", Name: "Rui", PasswordHash: hashOf(t, "secret")}
	clients := &stubClients{
		findByEmail: func(context.Context, string) (*domain.Client, error) {
			return legacy, nil
		},
		findByID: func(_ context.Context, id string) (*domain.Client, error) {
			if id != "c3" {
				return nil, domain.ErrClientNotFound
			}
			return legacy, nil
		},
	}
	svc, issuer := authService(users, clients)

	signed, user, err := svc.Login(context.Background(), "old@gym.pt", "secret")
	if err != nil {
		t.Fatalf("user-less legacy login: %v", err)
	}
	if user.Role != domain.RoleClient || user.TrainerID != "t1" {
		t.Fatalf("principal %+v", user)
	}
	claims, _ := issuer.Parse(signed)
	if claims.ID != "c3" {
		t.Fatalf("token id %q, want the profile id", claims.ID)
	}

	if _, _, err := svc.Login(context.Background(), "old@gym.pt", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_LegacyClientWithoutHash(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	clients := &stubClients{
		findByEmail: func(context.Context, string) (*domain.Client, error) {
			return &domain.Client{ID: "c4", TrainerID: "t1", Email: "void@gym.pt"}, nil
		},
	}
	svc, _ := authService(users, clients)

	if _, _, err := svc.Login(context.Background(), "void@gym.pt", "secret"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("profile without credential: got %v, want ErrUserNotFound", err)
	}
}

func TestRegister(t *testing.T) {
	var stored *domain.User
	users := &stubUsers{
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			cp := *user
			cp.ID = "u1"
			stored = &cp
			return &cp, nil
		},
	}
	svc, _ := authService(users, &stubClients{})

	created, err := svc.Register(context.Background(), "Ana", "ana@gym.pt", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Role != domain.RoleAdmin {
		t.Fatalf("role %q, want admin", created.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")) != nil {
		t.Fatal("stored hash does not verify")
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	svc, _ := authService(users, &stubClients{})

	err := svc.ChangePassword(context.Background(), token.Claims{ID: "u1", Email: "a@b.c"}, "wrong", "next")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestChangePassword_LegacyClient(t *testing.T) {
	users := &stubUsers{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	var rotatedID, rotatedHash string
	clients := &stubClients{
		findByEmail: func(context.Context, string) (*domain.Client, error) {
			return &domain.Client{ID: "c3", Email: "old@gym.pt", PasswordHash: hashOf(t, "secret")}, nil
		},
		updatePassword: func(_ context.Context, id, hash string) error {
			rotatedID, rotatedHash = id, hash
			return nil
		},
	}
	svc, _ := authService(users, clients)
	claims := token.Claims{ID: "c3", Email: "old@gym.pt", Role: domain.RoleClient}

	if err := svc.ChangePassword(context.Background(), claims, "secret", "longenough"); err != nil {
		t.Fatalf("legacy change: %v", err)
	}
	if rotatedID != "c3" {
		t.Fatalf("rotated id %q", rotatedID)
	}
	if bcrypt.CompareHashAndPassword([]byte(rotatedHash), []byte("longenough")) != nil {
		t.Fatal("stored hash does not verify the new password")
	}

	if err := svc.ChangePassword(context.Background(), claims, "wrong", "longenough"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: got %v, want ErrInvalidCredentials", err)
	}
}
