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

const (
	clientsCollection = "clients"
	metricsCollection = "body_metrics"
)

type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientsCollection)}
}

type clientDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id,omitempty"`
	TrainerID    string             `bson:"trainer_id"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	BirthDate    time.Time          `bson:"birth_date,omitempty"`
	Sex          string             `bson:"sex,omitempty"`
	HeightCm     float64            `bson:"height_cm,omitempty"`
	WeightKg     float64            `bson:"weight_kg,omitempty"`
	Goals        string             `bson:"goals,omitempty"`
	DeletedAt    *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func clientToDoc(c *domain.Client) clientDoc {
	return clientDoc{
		UserID:       c.UserID,
		TrainerID:    c.TrainerID,
		Email:        c.Email,
		Name:         c.Name,
		PasswordHash: c.PasswordHash,
		Phone:        c.Phone,
		BirthDate:    c.BirthDate,
		Sex:          c.Sex,
		HeightCm:     c.HeightCm,
		WeightKg:     c.WeightKg,
		Goals:        c.Goals,
		DeletedAt:    c.DeletedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		TrainerID:    d.TrainerID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		BirthDate:    d.BirthDate,
		Sex:          d.Sex,
		HeightCm:     d.HeightCm,
		WeightKg:     d.WeightKg,
		Goals:        d.Goals,
		DeletedAt:    d.DeletedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	res, err := r.coll.InsertOne(ctx, clientToDoc(client))
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	created := *client
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	var doc clientDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) ListByTrainer(ctx context.Context, trainerID string, includeDeleted bool) ([]domain.Client, error) {
	filter := bson.M{"trainer_id": trainerID}
	if !includeDeleted {
		filter["deleted_at"] = nil
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Client
	for cur.Next(ctx) {
		var doc clientDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	oid, err := primitive.ObjectIDFromHex(client.ID)
	if err != nil {
		return domain.ErrClientNotFound
	}

	set := bson.M{
		"name":       client.Name,
		"phone":      client.Phone,
		"height_cm":  client.HeightCm,
		"weight_kg":  client.WeightKg,
		"goals":      client.Goals,
		"updated_at": client.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// UpdatePassword rotates the bcrypt hash stored on a legacy profile row.
func (r *ClientRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update client password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at; the row is retained for the audit trail.
func (r *ClientRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// BodyMetricRepository persists body composition records.
type BodyMetricRepository struct {
	coll *mongo.Collection
}

func NewBodyMetricRepository(db *mongo.Database) *BodyMetricRepository {
	return &BodyMetricRepository{coll: db.Collection(metricsCollection)}
}

type metricDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClientID   string             `bson:"client_id"`
	WeightKg   float64            `bson:"weight_kg"`
	HeightCm   float64            `bson:"height_cm"`
	BMI        float64            `bson:"bmi"`
	BMR        float64            `bson:"bmr"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func (r *BodyMetricRepository) Insert(ctx context.Context, metric *domain.BodyMetric) error {
	doc := metricDoc{
		ClientID:   metric.ClientID,
		WeightKg:   metric.WeightKg,
		HeightCm:   metric.HeightCm,
		BMI:        metric.BMI,
		BMR:        metric.BMR,
		RecordedAt: metric.RecordedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert body metric: %w", err)
	}
	metric.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *BodyMetricRepository) ListByClient(ctx context.Context, clientID string) ([]domain.BodyMetric, error) {
	cur, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.BodyMetric
	for cur.Next(ctx) {
		var doc metricDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode body metric: %w", err)
		}
		out = append(out, domain.BodyMetric{
			ID:         doc.ID.Hex(),
			ClientID:   doc.ClientID,
			WeightKg:   doc.WeightKg,
			HeightCm:   doc.HeightCm,
			BMI:        doc.BMI,
			BMR:        doc.BMR,
			RecordedAt: doc.RecordedAt,
		})
	}
	return out, cur.Err()
}
