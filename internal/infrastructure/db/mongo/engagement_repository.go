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
	messagesCollection      = "messages"
	notificationsCollection = "notifications"
	checkinsCollection      = "check_ins"
	feedbackCollection      = "feedback"
)

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messagesCollection)}
}

type messageDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SenderID    string             `bson:"sender_id"`
	RecipientID string             `bson:"recipient_id"`
	Body        string             `bson:"body"`
	SentAt      time.Time          `bson:"sent_at"`
	ReadAt      *time.Time         `bson:"read_at,omitempty"`
}

func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	doc := messageDoc{
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		SentAt:      msg.SentAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	created := *msg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MessageRepository) Conversation(ctx context.Context, a, b string, since time.Time) ([]domain.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": a, "recipient_id": b},
			{"sender_id": b, "recipient_id": a},
		},
	}
	if !since.IsZero() {
		filter["sent_at"] = bson.M{"$gt": since}
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Message
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, domain.Message{
			ID:          doc.ID.Hex(),
			SenderID:    doc.SenderID,
			RecipientID: doc.RecipientID,
			Body:        doc.Body,
			SentAt:      doc.SentAt,
			ReadAt:      doc.ReadAt,
		})
	}
	return out, cur.Err()
}

func (r *MessageRepository) MarkRead(ctx context.Context, recipientID, senderID string, at time.Time) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "sender_id": senderID, "read_at": nil},
		bson.M{"$set": bson.M{"read_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationsCollection)}
}

type notificationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Kind      string             `bson:"kind"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body,omitempty"`
	ReadAt    *time.Time         `bson:"read_at,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	doc := notificationDoc{
		UserID:    n.UserID,
		Kind:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["read_at"] = nil
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Notification
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, domain.Notification{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			Kind:      doc.Kind,
			Title:     doc.Title,
			Body:      doc.Body,
			ReadAt:    doc.ReadAt,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, cur.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"read_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type CheckInRepository struct {
	coll *mongo.Collection
}

func NewCheckInRepository(db *mongo.Database) *CheckInRepository {
	return &CheckInRepository{coll: db.Collection(checkinsCollection)}
}

type checkInDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClientID   string             `bson:"client_id"`
	Date       time.Time          `bson:"date"`
	WeightKg   float64            `bson:"weight_kg,omitempty"`
	BMI        float64            `bson:"bmi,omitempty"`
	Mood       string             `bson:"mood,omitempty"`
	SleepHours float64            `bson:"sleep_hours,omitempty"`
	Notes      string             `bson:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *CheckInRepository) Insert(ctx context.Context, ci *domain.CheckIn) (*domain.CheckIn, error) {
	doc := checkInDoc{
		ClientID:   ci.ClientID,
		Date:       ci.Date,
		WeightKg:   ci.WeightKg,
		BMI:        ci.BMI,
		Mood:       ci.Mood,
		SleepHours: ci.SleepHours,
		Notes:      ci.Notes,
		CreatedAt:  ci.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert check-in: %w", err)
	}
	created := *ci
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CheckInRepository) ListByClient(ctx context.Context, clientID string) ([]domain.CheckIn, error) {
	cur, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.CheckIn
	for cur.Next(ctx) {
		var doc checkInDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode check-in: %w", err)
		}
		out = append(out, domain.CheckIn{
			ID:         doc.ID.Hex(),
			ClientID:   doc.ClientID,
			Date:       doc.Date,
			WeightKg:   doc.WeightKg,
			BMI:        doc.BMI,
			Mood:       doc.Mood,
			SleepHours: doc.SleepHours,
			Notes:      doc.Notes,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return out, cur.Err()
}

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(feedbackCollection)}
}

type feedbackDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  string             `bson:"client_id"`
	TrainerID string             `bson:"trainer_id"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *FeedbackRepository) Insert(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	doc := feedbackDoc{
		ClientID:  fb.ClientID,
		TrainerID: fb.TrainerID,
		Rating:    fb.Rating,
		Comment:   fb.Comment,
		CreatedAt: fb.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	created := *fb
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FeedbackRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Feedback, error) {
	cur, err := r.coll.Find(ctx, bson.M{"trainer_id": trainerID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Feedback
	for cur.Next(ctx) {
		var doc feedbackDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, domain.Feedback{
			ID:        doc.ID.Hex(),
			ClientID:  doc.ClientID,
			TrainerID: doc.TrainerID,
			Rating:    doc.Rating,
			Comment:   doc.Comment,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, cur.Err()
}
