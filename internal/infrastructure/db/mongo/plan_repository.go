package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

const (
	trainingPlansCollection  = "training_plans"
	nutritionPlansCollection = "nutrition_plans"
)

// TrainingPlanRepository persists training plans. Plan documents store the
// domain struct directly; the nested sessions are schemaless by design.
type TrainingPlanRepository struct {
	coll *mongo.Collection
}

func NewTrainingPlanRepository(db *mongo.Database) *TrainingPlanRepository {
	return &TrainingPlanRepository{coll: db.Collection(trainingPlansCollection)}
}

type trainingPlanDoc struct {
	ID   primitive.ObjectID  `bson:"_id,omitempty"`
	Plan domain.TrainingPlan `bson:"plan"`
}

func (r *TrainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (*domain.TrainingPlan, error) {
	res, err := r.coll.InsertOne(ctx, trainingPlanDoc{Plan: *plan})
	if err != nil {
		return nil, fmt.Errorf("insert training plan: %w", err)
	}
	created := *plan
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TrainingPlanRepository) FindByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc trainingPlanDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find training plan: %w", err)
	}
	doc.Plan.ID = doc.ID.Hex()
	return &doc.Plan, nil
}

func (r *TrainingPlanRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.TrainingPlan, error) {
	return r.list(ctx, bson.M{"plan.trainerid": trainerID})
}

func (r *TrainingPlanRepository) ListByClient(ctx context.Context, clientID string) ([]domain.TrainingPlan, error) {
	return r.list(ctx, bson.M{"plan.clientid": clientID})
}

func (r *TrainingPlanRepository) list(ctx context.Context, filter bson.M) ([]domain.TrainingPlan, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "plan.createdat", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list training plans: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.TrainingPlan
	for cur.Next(ctx) {
		var doc trainingPlanDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode training plan: %w", err)
		}
		doc.Plan.ID = doc.ID.Hex()
		out = append(out, doc.Plan)
	}
	return out, cur.Err()
}

func (r *TrainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	stored := *plan
	stored.ID = ""
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, trainingPlanDoc{ID: oid, Plan: stored})
	if err != nil {
		return fmt.Errorf("update training plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingPlanRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete training plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NutritionPlanRepository persists nutrition plans, same layout as training plans.
type NutritionPlanRepository struct {
	coll *mongo.Collection
}

func NewNutritionPlanRepository(db *mongo.Database) *NutritionPlanRepository {
	return &NutritionPlanRepository{coll: db.Collection(nutritionPlansCollection)}
}

type nutritionPlanDoc struct {
	ID   primitive.ObjectID   `bson:"_id,omitempty"`
	Plan domain.NutritionPlan `bson:"plan"`
}

func (r *NutritionPlanRepository) Create(ctx context.Context, plan *domain.NutritionPlan) (*domain.NutritionPlan, error) {
	res, err := r.coll.InsertOne(ctx, nutritionPlanDoc{Plan: *plan})
	if err != nil {
		return nil, fmt.Errorf("insert nutrition plan: %w", err)
	}
	created := *plan
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NutritionPlanRepository) FindByID(ctx context.Context, id string) (*domain.NutritionPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc nutritionPlanDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find nutrition plan: %w", err)
	}
	doc.Plan.ID = doc.ID.Hex()
	return &doc.Plan, nil
}

func (r *NutritionPlanRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.NutritionPlan, error) {
	return r.list(ctx, bson.M{"plan.trainerid": trainerID})
}

func (r *NutritionPlanRepository) ListByClient(ctx context.Context, clientID string) ([]domain.NutritionPlan, error) {
	return r.list(ctx, bson.M{"plan.clientid": clientID})
}

func (r *NutritionPlanRepository) list(ctx context.Context, filter bson.M) ([]domain.NutritionPlan, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "plan.createdat", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list nutrition plans: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.NutritionPlan
	for cur.Next(ctx) {
		var doc nutritionPlanDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode nutrition plan: %w", err)
		}
		doc.Plan.ID = doc.ID.Hex()
		out = append(out, doc.Plan)
	}
	return out, cur.Err()
}

func (r *NutritionPlanRepository) Update(ctx context.Context, plan *domain.NutritionPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	stored := *plan
	stored.ID = ""
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, nutritionPlanDoc{ID: oid, Plan: stored})
	if err != nil {
		return fmt.Errorf("update nutrition plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NutritionPlanRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete nutrition plan: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
