package service

import (
	"context"
	"time"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// Function-field stubs: each test wires only the calls it expects.

type stubUsers struct {
	create               func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByID             func(ctx context.Context, id string) (*domain.User, error)
	findByEmail          func(ctx context.Context, email string) (*domain.User, error)
	listByTrainerAndRole func(ctx context.Context, trainerID, role string) ([]domain.User, error)
	updatePassword       func(ctx context.Context, id, hash string) error
	updateRole           func(ctx context.Context, id, role string) error
}

func (s *stubUsers) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.create(ctx, user)
}
func (s *stubUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByID(ctx, id)
}
func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findByEmail(ctx, email)
}
func (s *stubUsers) ListByTrainerAndRole(ctx context.Context, trainerID, role string) ([]domain.User, error) {
	return s.listByTrainerAndRole(ctx, trainerID, role)
}
func (s *stubUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.updatePassword(ctx, id, hash)
}
func (s *stubUsers) UpdateRole(ctx context.Context, id, role string) error {
	return s.updateRole(ctx, id, role)
}

type stubClients struct {
	create         func(ctx context.Context, client *domain.Client) (*domain.Client, error)
	findByID       func(ctx context.Context, id string) (*domain.Client, error)
	findByEmail    func(ctx context.Context, email string) (*domain.Client, error)
	listByTrainer  func(ctx context.Context, trainerID string, includeDeleted bool) ([]domain.Client, error)
	update         func(ctx context.Context, client *domain.Client) error
	updatePassword func(ctx context.Context, id, hash string) error
	softDelete     func(ctx context.Context, id string) error
}

func (s *stubClients) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	return s.create(ctx, client)
}
func (s *stubClients) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.findByID(ctx, id)
}
func (s *stubClients) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return s.findByEmail(ctx, email)
}
func (s *stubClients) ListByTrainer(ctx context.Context, trainerID string, includeDeleted bool) ([]domain.Client, error) {
	return s.listByTrainer(ctx, trainerID, includeDeleted)
}
func (s *stubClients) Update(ctx context.Context, client *domain.Client) error {
	return s.update(ctx, client)
}
func (s *stubClients) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.updatePassword(ctx, id, hash)
}
func (s *stubClients) SoftDelete(ctx context.Context, id string) error {
	return s.softDelete(ctx, id)
}

type stubInvites struct {
	create        func(ctx context.Context, invite *domain.Invite) (*domain.Invite, error)
	findByCode    func(ctx context.Context, code string) (*domain.Invite, error)
	findByToken   func(ctx context.Context, token string) (*domain.Invite, error)
	listByTrainer func(ctx context.Context, trainerID string) ([]domain.Invite, error)
	delete        func(ctx context.Context, id, trainerID string) error
	expireStale   func(ctx context.Context) (int64, error)
}

func (s *stubInvites) Create(ctx context.Context, invite *domain.Invite) (*domain.Invite, error) {
	return s.create(ctx, invite)
}
func (s *stubInvites) FindByCode(ctx context.Context, code string) (*domain.Invite, error) {
	return s.findByCode(ctx, code)
}
func (s *stubInvites) FindByToken(ctx context.Context, token string) (*domain.Invite, error) {
	return s.findByToken(ctx, token)
}
func (s *stubInvites) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Invite, error) {
	return s.listByTrainer(ctx, trainerID)
}
func (s *stubInvites) Delete(ctx context.Context, id, trainerID string) error {
	return s.delete(ctx, id, trainerID)
}
func (s *stubInvites) ExpireStale(ctx context.Context) (int64, error) {
	return s.expireStale(ctx)
}

type stubBookings struct {
	slots map[string]*domain.BookingSlot
}

func (s *stubBookings) Create(_ context.Context, slot *domain.BookingSlot) (*domain.BookingSlot, error) {
	cp := *slot
	cp.ID = "slot-1"
	s.slots[cp.ID] = &cp
	return &cp, nil
}
func (s *stubBookings) FindByID(_ context.Context, id string) (*domain.BookingSlot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *slot
	return &cp, nil
}
func (s *stubBookings) ListByTrainer(_ context.Context, trainerID string) ([]domain.BookingSlot, error) {
	var out []domain.BookingSlot
	for _, slot := range s.slots {
		if slot.TrainerID == trainerID {
			out = append(out, *slot)
		}
	}
	return out, nil
}
func (s *stubBookings) ListByClient(_ context.Context, clientID string) ([]domain.BookingSlot, error) {
	var out []domain.BookingSlot
	for _, slot := range s.slots {
		if slot.ClientID == clientID {
			out = append(out, *slot)
		}
	}
	return out, nil
}
func (s *stubBookings) ListOpenByTrainer(_ context.Context, trainerID string) ([]domain.BookingSlot, error) {
	var out []domain.BookingSlot
	for _, slot := range s.slots {
		if slot.TrainerID == trainerID && slot.Status == domain.BookingOpen {
			out = append(out, *slot)
		}
	}
	return out, nil
}
func (s *stubBookings) Update(_ context.Context, slot *domain.BookingSlot) error {
	if _, ok := s.slots[slot.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *slot
	s.slots[slot.ID] = &cp
	return nil
}
func (s *stubBookings) Delete(_ context.Context, id string) error {
	if _, ok := s.slots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.slots, id)
	return nil
}

// stagingTx records onboarding writes; nothing is visible unless the
// enclosing stubOnboarding commits.
type stagingTx struct {
	client       *domain.Client
	user         *domain.User
	linked       bool
	inviteID     string
	metric       *domain.BodyMetric
	failAcceptOn error
}

func (t *stagingTx) CreateClient(_ context.Context, client *domain.Client) (string, error) {
	t.client = client
	return "c-new", nil
}
func (t *stagingTx) CreateUser(_ context.Context, user *domain.User) (string, error) {
	t.user = user
	return "u-new", nil
}
func (t *stagingTx) LinkClientUser(_ context.Context, clientID, userID string) error {
	t.linked = true
	return nil
}
func (t *stagingTx) MarkInviteAccepted(_ context.Context, inviteID string, _ time.Time) error {
	if t.failAcceptOn != nil {
		return t.failAcceptOn
	}
	t.inviteID = inviteID
	return nil
}
func (t *stagingTx) InsertBodyMetric(_ context.Context, metric *domain.BodyMetric) error {
	t.metric = metric
	return nil
}

type stubOnboarding struct {
	tx        *stagingTx
	started   bool
	committed bool
}

func (s *stubOnboarding) InTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.OnboardingTx) error) error {
	s.started = true
	if err := fn(ctx, s.tx); err != nil {
		return err
	}
	s.committed = true
	return nil
}
