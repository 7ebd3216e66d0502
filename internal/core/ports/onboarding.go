package ports

import (
	"context"
	"time"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// OnboardingTx exposes the writes available inside the onboarding transaction.
// Every call is bound to the transaction of the enclosing InTransaction run;
// if the callback returns an error none of them become visible.
type OnboardingTx interface {
	CreateClient(ctx context.Context, client *domain.Client) (string, error)
	CreateUser(ctx context.Context, user *domain.User) (string, error)
	LinkClientUser(ctx context.Context, clientID, userID string) error
	MarkInviteAccepted(ctx context.Context, inviteID string, at time.Time) error
	InsertBodyMetric(ctx context.Context, metric *domain.BodyMetric) error
}

// OnboardingRepository runs the atomic athlete-creation transaction.
type OnboardingRepository interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx OnboardingTx) error) error
}

// OnboardingInput is the self-reported signup payload, validated against a
// pending invite before any row is written.
type OnboardingInput struct {
	InviteCode  string
	InviteToken string
	Name        string
	Password    string
	Phone       string
	BirthDate   time.Time
	Sex         string
	HeightCm    float64
	WeightKg    float64
	Goals       string
}

// OnboardingResult reports the created pair.
type OnboardingResult struct {
	ClientID string         `json:"client_id"`
	UserID   string         `json:"user_id"`
	Metric   *domain.BodyMetric `json:"initial_metric,omitempty"`
}
