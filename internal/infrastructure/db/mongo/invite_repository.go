package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

const invitesCollection = "invites"

type InviteRepository struct {
	coll *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{coll: db.Collection(invitesCollection)}
}

type inviteDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	TrainerID  string             `bson:"trainer_id"`
	Email      string             `bson:"email"`
	Code       string             `bson:"code"`
	Token      string             `bson:"token"`
	Status     string             `bson:"status"`
	ExpiresAt  time.Time          `bson:"expires_at"`
	AcceptedAt *time.Time         `bson:"accepted_at,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d inviteDoc) toDomain() *domain.Invite {
	return &domain.Invite{
		ID:         d.ID.Hex(),
		TrainerID:  d.TrainerID,
		Email:      d.Email,
		Code:       d.Code,
		Token:      d.Token,
		Status:     domain.InviteStatus(d.Status),
		ExpiresAt:  d.ExpiresAt,
		AcceptedAt: d.AcceptedAt,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *InviteRepository) Create(ctx context.Context, invite *domain.Invite) (*domain.Invite, error) {
	doc := inviteDoc{
		TrainerID: invite.TrainerID,
		Email:     invite.Email,
		Code:      invite.Code,
		Token:     invite.Token,
		Status:    string(invite.Status),
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}

	created := *invite
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *InviteRepository) FindByCode(ctx context.Context, code string) (*domain.Invite, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *InviteRepository) FindByToken(ctx context.Context, token string) (*domain.Invite, error) {
	return r.findOne(ctx, bson.M{"token": token})
}

func (r *InviteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Invite, error) {
	var doc inviteDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("find invite: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InviteRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Invite, error) {
	cur, err := r.coll.Find(ctx, bson.M{"trainer_id": trainerID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Invite
	for cur.Next(ctx) {
		var doc inviteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode invite: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

func (r *InviteRepository) Delete(ctx context.Context, id, trainerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInviteNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "trainer_id": trainerID, "status": string(domain.InvitePending)})
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

// ExpireStale flips pending invites past their deadline to expired.
func (r *InviteRepository) ExpireStale(ctx context.Context) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": string(domain.InvitePending), "expires_at": bson.M{"$lt": time.Now().UTC()}},
		bson.M{"$set": bson.M{"status": string(domain.InviteExpired)}},
	)
	if err != nil {
		return 0, fmt.Errorf("expire invites: %w", err)
	}
	return res.ModifiedCount, nil
}
