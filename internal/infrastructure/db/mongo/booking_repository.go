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

const bookingsCollection = "booking_slots"

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type bookingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TrainerID string             `bson:"trainer_id"`
	ClientID  string             `bson:"client_id,omitempty"`
	StartsAt  time.Time          `bson:"starts_at"`
	EndsAt    time.Time          `bson:"ends_at"`
	Status    string             `bson:"status"`
	Notes     string             `bson:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d bookingDoc) toDomain() domain.BookingSlot {
	return domain.BookingSlot{
		ID:        d.ID.Hex(),
		TrainerID: d.TrainerID,
		ClientID:  d.ClientID,
		StartsAt:  d.StartsAt,
		EndsAt:    d.EndsAt,
		Status:    domain.BookingStatus(d.Status),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, slot *domain.BookingSlot) (*domain.BookingSlot, error) {
	doc := bookingDoc{
		TrainerID: slot.TrainerID,
		ClientID:  slot.ClientID,
		StartsAt:  slot.StartsAt,
		EndsAt:    slot.EndsAt,
		Status:    string(slot.Status),
		Notes:     slot.Notes,
		CreatedAt: slot.CreatedAt,
		UpdatedAt: slot.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking slot: %w", err)
	}
	created := *slot
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.BookingSlot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc bookingDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find booking slot: %w", err)
	}
	slot := doc.toDomain()
	return &slot, nil
}

func (r *BookingRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.BookingSlot, error) {
	return r.list(ctx, bson.M{"trainer_id": trainerID})
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.BookingSlot, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *BookingRepository) ListOpenByTrainer(ctx context.Context, trainerID string) ([]domain.BookingSlot, error) {
	return r.list(ctx, bson.M{"trainer_id": trainerID, "status": string(domain.BookingOpen)})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]domain.BookingSlot, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list booking slots: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.BookingSlot
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode booking slot: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *BookingRepository) Update(ctx context.Context, slot *domain.BookingSlot) error {
	oid, err := primitive.ObjectIDFromHex(slot.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	set := bson.M{
		"client_id":  slot.ClientID,
		"status":     string(slot.Status),
		"notes":      slot.Notes,
		"updated_at": slot.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update booking slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete booking slot: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
