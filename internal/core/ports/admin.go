package ports

import (
	"context"
	"time"

	"github.com/joaaoazul/siganext/internal/core/domain"
)

// AuditSink accepts audit entries for asynchronous persistence. Record never
// blocks and never reports failure to the caller.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists and queries the audit log.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, error)
}

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	ActorID  string
	Resource string
	Since    time.Time
	Limit    int64
}

// IncidentRepository persists operational incidents.
type IncidentRepository interface {
	Create(ctx context.Context, inc *domain.Incident) (*domain.Incident, error)
	List(ctx context.Context, onlyOpen bool) ([]domain.Incident, error)
	Resolve(ctx context.Context, id string, at time.Time) error
}

// StatsRepository aggregates platform-wide counts.
type StatsRepository interface {
	PlatformStats(ctx context.Context) (*domain.PlatformStats, error)
}
