package domain

import "time"

// AuditEntry records who did what to which resource. Entries are insert-only
// and written asynchronously; a failed write never fails the triggering request.
type AuditEntry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

// IncidentStatus is the lifecycle state of an operational incident.
type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "open"
	IncidentResolved IncidentStatus = "resolved"
)

// Incident is an operational issue tracked by superadmins.
type Incident struct {
	ID         string         `json:"id"`
	Severity   string         `json:"severity"` // low, medium, high, critical
	Title      string         `json:"title"`
	Detail     string         `json:"detail,omitempty"`
	Status     IncidentStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
}

// PlatformStats is the superadmin overview of tenant activity.
type PlatformStats struct {
	Trainers      int64 `json:"trainers"`
	Athletes      int64 `json:"athletes"`
	TrainingPlans int64 `json:"training_plans"`
	Bookings      int64 `json:"bookings"`
	Messages      int64 `json:"messages"`
	OpenIncidents int64 `json:"open_incidents"`
}
