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

const contentCollection = "content_items"

type ContentRepository struct {
	coll *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{coll: db.Collection(contentCollection)}
}

type contentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TrainerID string             `bson:"trainer_id"`
	Title     string             `bson:"title"`
	Kind      string             `bson:"kind"`
	URL       string             `bson:"url"`
	Audience  []string           `bson:"audience,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d contentDoc) toDomain() domain.ContentItem {
	return domain.ContentItem{
		ID:        d.ID.Hex(),
		TrainerID: d.TrainerID,
		Title:     d.Title,
		Kind:      d.Kind,
		URL:       d.URL,
		Audience:  d.Audience,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *ContentRepository) Create(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	doc := contentDoc{
		TrainerID: item.TrainerID,
		Title:     item.Title,
		Kind:      item.Kind,
		URL:       item.URL,
		Audience:  item.Audience,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert content item: %w", err)
	}
	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.ContentItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc contentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find content item: %w", err)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *ContentRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.ContentItem, error) {
	return r.list(ctx, bson.M{"trainer_id": trainerID})
}

// ListForClient returns the trainer's items addressed to everyone (no audience)
// or explicitly to this client.
func (r *ContentRepository) ListForClient(ctx context.Context, trainerID, clientID string) ([]domain.ContentItem, error) {
	filter := bson.M{
		"trainer_id": trainerID,
		"$or": []bson.M{
			{"audience": bson.M{"$exists": false}},
			{"audience": bson.M{"$size": 0}},
			{"audience": clientID},
		},
	}
	return r.list(ctx, filter)
}

func (r *ContentRepository) list(ctx context.Context, filter bson.M) ([]domain.ContentItem, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ContentItem
	for cur.Next(ctx) {
		var doc contentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode content item: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ContentRepository) Update(ctx context.Context, item *domain.ContentItem) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	set := bson.M{
		"title":      item.Title,
		"kind":       item.Kind,
		"url":        item.URL,
		"audience":   item.Audience,
		"updated_at": item.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update content item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
