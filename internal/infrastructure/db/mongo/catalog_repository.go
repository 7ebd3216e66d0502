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
	exercisesCollection = "exercises"
	foodsCollection     = "foods"
)

type ExerciseRepository struct {
	coll *mongo.Collection
}

func NewExerciseRepository(db *mongo.Database) *ExerciseRepository {
	return &ExerciseRepository{coll: db.Collection(exercisesCollection)}
}

type exerciseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	MuscleGroup string             `bson:"muscle_group,omitempty"`
	Equipment   string             `bson:"equipment,omitempty"`
	VideoURL    string             `bson:"video_url,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d exerciseDoc) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		MuscleGroup: d.MuscleGroup,
		Equipment:   d.Equipment,
		VideoURL:    d.VideoURL,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) (*domain.Exercise, error) {
	doc := exerciseDoc{
		Name:        ex.Name,
		MuscleGroup: ex.MuscleGroup,
		Equipment:   ex.Equipment,
		VideoURL:    ex.VideoURL,
		CreatedBy:   ex.CreatedBy,
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	created := *ex
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ExerciseRepository) FindByID(ctx context.Context, id string) (*domain.Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc exerciseDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	ex := doc.toDomain()
	return &ex, nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Exercise
	for cur.Next(ctx) {
		var doc exerciseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode exercise: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ExerciseRepository) Update(ctx context.Context, ex *domain.Exercise) error {
	oid, err := primitive.ObjectIDFromHex(ex.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	set := bson.M{
		"name":         ex.Name,
		"muscle_group": ex.MuscleGroup,
		"equipment":    ex.Equipment,
		"video_url":    ex.VideoURL,
		"updated_at":   ex.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type FoodRepository struct {
	coll *mongo.Collection
}

func NewFoodRepository(db *mongo.Database) *FoodRepository {
	return &FoodRepository{coll: db.Collection(foodsCollection)}
}

type foodDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	KcalPer100g float64            `bson:"kcal_per_100g"`
	ProteinG    float64            `bson:"protein_g"`
	CarbsG      float64            `bson:"carbs_g"`
	FatG        float64            `bson:"fat_g"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d foodDoc) toDomain() domain.Food {
	return domain.Food{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		KcalPer100g: d.KcalPer100g,
		ProteinG:    d.ProteinG,
		CarbsG:      d.CarbsG,
		FatG:        d.FatG,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	doc := foodDoc{
		Name:        food.Name,
		KcalPer100g: food.KcalPer100g,
		ProteinG:    food.ProteinG,
		CarbsG:      food.CarbsG,
		FatG:        food.FatG,
		CreatedBy:   food.CreatedBy,
		CreatedAt:   food.CreatedAt,
		UpdatedAt:   food.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}
	created := *food
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id string) (*domain.Food, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc foodDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find food: %w", err)
	}
	food := doc.toDomain()
	return &food, nil
}

func (r *FoodRepository) List(ctx context.Context) ([]domain.Food, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Food
	for cur.Next(ctx) {
		var doc foodDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode food: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	oid, err := primitive.ObjectIDFromHex(food.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	set := bson.M{
		"name":          food.Name,
		"kcal_per_100g": food.KcalPer100g,
		"protein_g":     food.ProteinG,
		"carbs_g":       food.CarbsG,
		"fat_g":         food.FatG,
		"updated_at":    food.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FoodRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
