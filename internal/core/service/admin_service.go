package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

// AdminService backs the superadmin area: platform stats, incidents and the
// audit log.
type AdminService struct {
	stats     ports.StatsRepository
	incidents ports.IncidentRepository
	auditLog  ports.AuditRepository
	audit     ports.AuditSink
	log       zerolog.Logger
}

func NewAdminService(stats ports.StatsRepository, incidents ports.IncidentRepository, auditLog ports.AuditRepository, audit ports.AuditSink, log zerolog.Logger) *AdminService {
	return &AdminService{stats: stats, incidents: incidents, auditLog: auditLog, audit: audit, log: log}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.PlatformStats, error) {
	return s.stats.PlatformStats(ctx)
}

func (s *AdminService) OpenIncident(ctx context.Context, actorID, severity, title, detail string) (*domain.Incident, error) {
	if title == "" {
		return nil, domain.ErrValidation
	}
	switch severity {
	case "low", "medium", "high", "critical":
	default:
		return nil, domain.ErrValidation
	}

	inc, err := s.incidents.Create(ctx, &domain.Incident{
		Severity:  severity,
		Title:     title,
		Detail:    detail,
		Status:    domain.IncidentOpen,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    actorID,
		ActorRole:  domain.RoleSuperadmin,
		Action:     "incident_open",
		Resource:   "incident",
		ResourceID: inc.ID,
		At:         inc.CreatedAt,
	})
	return inc, nil
}

func (s *AdminService) ListIncidents(ctx context.Context, onlyOpen bool) ([]domain.Incident, error) {
	return s.incidents.List(ctx, onlyOpen)
}

func (s *AdminService) ResolveIncident(ctx context.Context, id, actorID string) error {
	now := time.Now().UTC()
	if err := s.incidents.Resolve(ctx, id, now); err != nil {
		return err
	}
	s.audit.Record(domain.AuditEntry{
		ActorID:    actorID,
		ActorRole:  domain.RoleSuperadmin,
		Action:     "incident_resolve",
		Resource:   "incident",
		ResourceID: id,
		At:         now,
	})
	return nil
}

func (s *AdminService) Logs(ctx context.Context, filter ports.AuditFilter) ([]domain.AuditEntry, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.auditLog.List(ctx, filter)
}
