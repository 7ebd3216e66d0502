package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/joaaoazul/siganext/internal/api/metrics"
	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/core/token"
)

// AuthService implements login, PT registration, token refresh and password
// changes. Athlete accounts are created exclusively through onboarding.
type AuthService struct {
	users   ports.UserRepository
	clients ports.ClientRepository
	issuer  *token.Issuer
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, clients ports.ClientRepository, issuer *token.Issuer, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, clients: clients, issuer: issuer, audit: audit, log: log}
}

// Login verifies credentials and mints the session token. For role=client
// principals the token id is the Client profile id, because every
// athlete-facing endpoint keys its data by profile id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Legacy athletes predate the dual-record linkage and only have a
		// Client row. Synthesise a principal from it.
		user, err = s.legacyClientPrincipal(ctx, email)
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, err
	}

	if user.Disabled() {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	principalID := user.ID
	if user.Role == domain.RoleClient {
		principalID = s.resolveProfileID(ctx, user)
	}

	signed, err := s.issuer.Issue(token.Claims{
		ID:    principalID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Record(domain.AuditEntry{
		ActorID:   principalID,
		ActorRole: user.Role,
		Action:    "login",
		Resource:  "session",
		At:        time.Now().UTC(),
	})
	s.log.Info().Str("email", email).Str("role", user.Role).Msg("login")

	return signed, user, nil
}

// resolveProfileID reconciles the Client/User record duality: prefer the
// linked profile id, fall back to lookup by email, fall back to the raw id.
func (s *AuthService) resolveProfileID(ctx context.Context, user *domain.User) string {
	if user.ClientID != "" {
		if client, err := s.clients.FindByID(ctx, user.ClientID); err == nil {
			return client.ID
		}
	}
	if client, err := s.clients.FindByEmail(ctx, user.Email); err == nil {
		return client.ID
	}
	return user.ID
}

// legacyClientPrincipal builds a User view over a Client row predating the
// dual-record linkage. When the row still links a User that identity wins;
// a fully user-less row authenticates against its own stored hash.
func (s *AuthService) legacyClientPrincipal(ctx context.Context, email string) (*domain.User, error) {
	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if client.DeletedAt != nil {
		return nil, domain.ErrAccountDisabled
	}

	if client.UserID != "" {
		if user, err := s.users.FindByID(ctx, client.UserID); err == nil {
			return user, nil
		}
	}

	if client.PasswordHash == "" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{
		ID:           client.ID,
		Email:        client.Email,
		Name:         client.Name,
		PasswordHash: client.PasswordHash,
		Role:         domain.RoleClient,
		ClientID:     client.ID,
		TrainerID:    client.TrainerID,
	}, nil
}

// Register creates a PT (admin) principal. Athlete self-registration is not
// supported; athletes join via invite-gated onboarding.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:   created.ID,
		ActorRole: created.Role,
		Action:    "register",
		Resource:  "user",
		ResourceID: created.ID,
		At:        now,
	})
	s.log.Info().Str("email", email).Msg("trainer registered")

	return created, nil
}

// Refresh re-signs a still-valid token with identical claims and a fresh
// expiry. The old token is not invalidated server-side.
func (s *AuthService) Refresh(_ context.Context, claims token.Claims) (string, error) {
	if claims.ID == "" || claims.Role == "" {
		return "", domain.ErrInvalidCredentials
	}
	signed, err := s.issuer.Issue(claims)
	if err != nil {
		return "", err
	}
	metrics.TokensRenewedTotal.Inc()
	return signed, nil
}

// ChangePassword verifies the current password before storing a new hash.
// The principal is located by email because client tokens carry profile ids.
func (s *AuthService) ChangePassword(ctx context.Context, claims token.Claims, current, next string) error {
	if next == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return s.changeLegacyPassword(ctx, claims, current, next)
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:   claims.ID,
		ActorRole: claims.Role,
		Action:    "password_change",
		Resource:  "user",
		ResourceID: user.ID,
		At:        time.Now().UTC(),
	})
	return nil
}

// changeLegacyPassword rotates the hash stored on a user-less profile row.
func (s *AuthService) changeLegacyPassword(ctx context.Context, claims token.Claims, current, next string) error {
	client, err := s.clients.FindByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}
	if client.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.clients.UpdatePassword(ctx, client.ID, string(hash)); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    claims.ID,
		ActorRole:  claims.Role,
		Action:     "password_change",
		Resource:   "client",
		ResourceID: client.ID,
		At:         time.Now().UTC(),
	})
	return nil
}
