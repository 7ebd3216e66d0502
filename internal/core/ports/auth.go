package ports

import (
	"context"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/token"
)

// UserRepository persists login identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByTrainerAndRole(ctx context.Context, trainerID, role string) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) error
}

// AuthService is the surface the auth handler depends on.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Refresh(ctx context.Context, claims token.Claims) (string, error)
	ChangePassword(ctx context.Context, claims token.Claims, current, next string) error
}
