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
	"github.com/joaaoazul/siganext/internal/core/ports"
)

const (
	auditCollection     = "audit_log"
	incidentsCollection = "incidents"
)

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ActorID    string             `bson:"actor_id"`
	ActorRole  string             `bson:"actor_role"`
	Action     string             `bson:"action"`
	Resource   string             `bson:"resource"`
	ResourceID string             `bson:"resource_id,omitempty"`
	Detail     string             `bson:"detail,omitempty"`
	At         time.Time          `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Detail:     entry.Detail,
		At:         entry.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter ports.AuditFilter) ([]domain.AuditEntry, error) {
	query := bson.M{}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if filter.Resource != "" {
		query["resource"] = filter.Resource
	}
	if !filter.Since.IsZero() {
		query["at"] = bson.M{"$gte": filter.Since}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.coll.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AuditEntry
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, domain.AuditEntry{
			ID:         doc.ID.Hex(),
			ActorID:    doc.ActorID,
			ActorRole:  doc.ActorRole,
			Action:     doc.Action,
			Resource:   doc.Resource,
			ResourceID: doc.ResourceID,
			Detail:     doc.Detail,
			At:         doc.At,
		})
	}
	return out, cur.Err()
}

type IncidentRepository struct {
	coll *mongo.Collection
}

func NewIncidentRepository(db *mongo.Database) *IncidentRepository {
	return &IncidentRepository{coll: db.Collection(incidentsCollection)}
}

type incidentDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Severity   string             `bson:"severity"`
	Title      string             `bson:"title"`
	Detail     string             `bson:"detail,omitempty"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	ResolvedAt *time.Time         `bson:"resolved_at,omitempty"`
}

func (r *IncidentRepository) Create(ctx context.Context, inc *domain.Incident) (*domain.Incident, error) {
	doc := incidentDoc{
		Severity:  inc.Severity,
		Title:     inc.Title,
		Detail:    inc.Detail,
		Status:    string(inc.Status),
		CreatedAt: inc.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert incident: %w", err)
	}
	created := *inc
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *IncidentRepository) List(ctx context.Context, onlyOpen bool) ([]domain.Incident, error) {
	filter := bson.M{}
	if onlyOpen {
		filter["status"] = string(domain.IncidentOpen)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Incident
	for cur.Next(ctx) {
		var doc incidentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode incident: %w", err)
		}
		out = append(out, domain.Incident{
			ID:         doc.ID.Hex(),
			Severity:   doc.Severity,
			Title:      doc.Title,
			Detail:     doc.Detail,
			Status:     domain.IncidentStatus(doc.Status),
			CreatedAt:  doc.CreatedAt,
			ResolvedAt: doc.ResolvedAt,
		})
	}
	return out, cur.Err()
}

func (r *IncidentRepository) Resolve(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.IncidentOpen)},
		bson.M{"$set": bson.M{"status": string(domain.IncidentResolved), "resolved_at": at}},
	)
	if err != nil {
		return fmt.Errorf("resolve incident: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StatsRepository aggregates counts across collections for the superadmin
// overview. Counts run sequentially; the handler caches nothing.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	stats := &domain.PlatformStats{}

	counts := []struct {
		coll   string
		filter bson.M
		dst    *int64
	}{
		{usersCollection, bson.M{"role": domain.RoleAdmin}, &stats.Trainers},
		{clientsCollection, bson.M{"deleted_at": nil}, &stats.Athletes},
		{trainingPlansCollection, bson.M{}, &stats.TrainingPlans},
		{bookingsCollection, bson.M{}, &stats.Bookings},
		{messagesCollection, bson.M{}, &stats.Messages},
		{incidentsCollection, bson.M{"status": string(domain.IncidentOpen)}, &stats.OpenIncidents},
	}
	for _, c := range counts {
		n, err := r.db.Collection(c.coll).CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.coll, err)
		}
		*c.dst = n
	}
	return stats, nil
}
