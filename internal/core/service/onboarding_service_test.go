package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/infrastructure/queue"
)

func pendingInvite() *domain.Invite {
	return &domain.Invite{
		ID:        "inv1",
		TrainerID: "t1",
		Email:     "new@gym.pt",
		Code:      "123456",
		Status:    domain.InvitePending,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

func onboardingService(invite *domain.Invite, repo *stubOnboarding) *OnboardingService {
	invites := NewInviteService(&stubInvites{
		findByCode: func(_ context.Context, code string) (*domain.Invite, error) {
			if invite == nil || code != invite.Code {
				return nil, domain.ErrInviteNotFound
			}
			return invite, nil
		},
	}, zerolog.Nop())
	return NewOnboardingService(invites, repo, queue.NopSink{}, zerolog.Nop())
}

func TestOnboarding_Complete(t *testing.T) {
	repo := &stubOnboarding{tx: &stagingTx{}}
	svc := onboardingService(pendingInvite(), repo)

	birth := time.Date(1996, 1, 15, 0, 0, 0, 0, time.UTC)
	result, err := svc.Complete(context.Background(), ports.OnboardingInput{
		InviteCode: "123456",
		Name:       "Rui",
		Password:   "secret",
		BirthDate:  birth,
		Sex:        domain.SexMale,
		HeightCm:   175,
		WeightKg:   70,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !repo.committed {
		t.Fatal("transaction not committed")
	}
	if result.ClientID != "c-new" || result.UserID != "u-new" {
		t.Fatalf("result %+v", result)
	}

	tx := repo.tx
	if tx.client.TrainerID != "t1" || tx.client.Email != "new@gym.pt" {
		t.Fatalf("client row %+v", tx.client)
	}
	if tx.user.Role != domain.RoleClient || tx.user.ClientID != "c-new" || tx.user.PasswordHash == "" {
		t.Fatalf("user row %+v", tx.user)
	}
	if !tx.linked || tx.inviteID != "inv1" {
		t.Fatal("link or invite acceptance missing")
	}
	if tx.metric == nil || tx.metric.BMI != 22.9 {
		t.Fatalf("initial metric %+v", tx.metric)
	}
	if want := domain.BMR(70, 175, domain.Age(birth, time.Now().UTC()), domain.SexMale); tx.metric.BMR != want {
		t.Fatalf("BMR %v, want %v", tx.metric.BMR, want)
	}
}

func TestOnboarding_NoMetricWithoutMeasurements(t *testing.T) {
	repo := &stubOnboarding{tx: &stagingTx{}}
	svc := onboardingService(pendingInvite(), repo)

	result, err := svc.Complete(context.Background(), ports.OnboardingInput{
		InviteCode: "123456",
		Name:       "Rui",
		Password:   "secret",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if repo.tx.metric != nil || result.Metric != nil {
		t.Fatal("metric should be skipped without weight and height")
	}
}

func TestOnboarding_AtomicOnAcceptFailure(t *testing.T) {
	boom := errors.New("write conflict")
	repo := &stubOnboarding{tx: &stagingTx{failAcceptOn: boom}}
	svc := onboardingService(pendingInvite(), repo)

	_, err := svc.Complete(context.Background(), ports.OnboardingInput{
		InviteCode: "123456",
		Name:       "Rui",
		Password:   "secret",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the transaction error", err)
	}
	if repo.committed {
		t.Fatal("failed transaction must not commit")
	}
}

func TestOnboarding_RejectsStaleInvite(t *testing.T) {
	stale := pendingInvite()
	stale.ExpiresAt = time.Now().UTC().Add(-time.Hour)

	repo := &stubOnboarding{tx: &stagingTx{}}
	svc := onboardingService(stale, repo)

	_, err := svc.Complete(context.Background(), ports.OnboardingInput{
		InviteCode: "123456",
		Name:       "Rui",
		Password:   "secret",
	})
	if !errors.Is(err, domain.ErrInviteExpired) {
		t.Fatalf("got %v, want ErrInviteExpired", err)
	}
	if repo.started {
		t.Fatal("no transaction may start for a stale invite")
	}
}

func TestOnboarding_RequiresNameAndPassword(t *testing.T) {
	repo := &stubOnboarding{tx: &stagingTx{}}
	svc := onboardingService(pendingInvite(), repo)

	if _, err := svc.Complete(context.Background(), ports.OnboardingInput{InviteCode: "123456"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}
