package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// OnboardingRepository runs the athlete-creation writes inside one Mongo
// multi-document transaction. Requires a replica set (standalone Mongo does
// not support transactions).
type OnboardingRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewOnboardingRepository(client *mongo.Client, db *mongo.Database) *OnboardingRepository {
	return &OnboardingRepository{client: client, db: db}
}

// InTransaction opens a session and executes fn inside WithTransaction. The
// callback's writes all commit or all abort.
func (r *OnboardingRepository) InTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.OnboardingTx) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, &onboardingTx{db: r.db})
	})
	if err != nil {
		return fmt.Errorf("onboarding transaction: %w", err)
	}
	return nil
}

// onboardingTx performs the individual writes. All calls receive the session
// context from InTransaction, which binds them to the open transaction.
type onboardingTx struct {
	db *mongo.Database
}

func (t *onboardingTx) CreateClient(ctx context.Context, client *domain.Client) (string, error) {
	res, err := t.db.Collection(clientsCollection).InsertOne(ctx, clientToDoc(client))
	if err != nil {
		return "", fmt.Errorf("insert client: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (t *onboardingTx) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	doc := userDoc{
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		ClientID:     user.ClientID,
		TrainerID:    user.TrainerID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	res, err := t.db.Collection(usersCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (t *onboardingTx) LinkClientUser(ctx context.Context, clientID, userID string) error {
	coid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return domain.ErrClientNotFound
	}
	if _, err := t.db.Collection(clientsCollection).UpdateOne(ctx,
		bson.M{"_id": coid}, bson.M{"$set": bson.M{"user_id": userID}}); err != nil {
		return fmt.Errorf("link client to user: %w", err)
	}
	return nil
}

func (t *onboardingTx) MarkInviteAccepted(ctx context.Context, inviteID string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(inviteID)
	if err != nil {
		return domain.ErrInviteNotFound
	}

	// Guard on status=pending so a concurrent redemption loses the race.
	res, err := t.db.Collection(invitesCollection).UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.InvitePending)},
		bson.M{"$set": bson.M{"status": string(domain.InviteAccepted), "accepted_at": at}},
	)
	if err != nil {
		return fmt.Errorf("accept invite: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInviteAccepted
	}
	return nil
}

func (t *onboardingTx) InsertBodyMetric(ctx context.Context, metric *domain.BodyMetric) error {
	doc := metricDoc{
		ClientID:   metric.ClientID,
		WeightKg:   metric.WeightKg,
		HeightCm:   metric.HeightCm,
		BMI:        metric.BMI,
		BMR:        metric.BMR,
		RecordedAt: metric.RecordedAt,
	}
	if _, err := t.db.Collection(metricsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert body metric: %w", err)
	}
	return nil
}
