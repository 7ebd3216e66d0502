package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// EmployeeService manages staff accounts owned by a trainer.
type EmployeeService struct {
	users ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewEmployeeService(users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{users: users, audit: audit, log: log}
}

// Create adds an employee identity under the trainer's tenancy.
func (s *EmployeeService) Create(ctx context.Context, trainerID, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleEmployee,
		TrainerID:    trainerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    trainerID,
		ActorRole:  domain.RoleAdmin,
		Action:     "employee_create",
		Resource:   "user",
		ResourceID: created.ID,
		At:         now,
	})
	return created, nil
}

// List returns the trainer's employees.
func (s *EmployeeService) List(ctx context.Context, trainerID string) ([]domain.User, error) {
	return s.users.ListByTrainerAndRole(ctx, trainerID, domain.RoleEmployee)
}

// Deactivate soft-deletes an employee by flipping its role to the deleted
// sentinel, preserving the row for the audit trail.
func (s *EmployeeService) Deactivate(ctx context.Context, id, trainerID string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleEmployee || user.TrainerID != trainerID {
		return domain.ErrForbidden
	}

	if err := s.users.UpdateRole(ctx, id, domain.DeletedRole(domain.RoleEmployee)); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    trainerID,
		ActorRole:  domain.RoleAdmin,
		Action:     "employee_deactivate",
		Resource:   "user",
		ResourceID: id,
		At:         time.Now().UTC(),
	})
	return nil
}
