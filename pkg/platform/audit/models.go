package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing downstream.
type EventCategory string

const (
	// CategoryCompliance covers removals, which downstream consumers keep longest.
	CategoryCompliance EventCategory = "compliance"
	// CategoryOperations covers routine directory changes.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted by the directory managers after a successful write. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	// Entity is "person" or "skill".
	Entity string `json:"entity"`
	Key    string `json:"key"`
	// PreviousKey is set on updates that renamed a keyed record.
	PreviousKey string `json:"previous_key,omitempty"`
	ActorID     string `json:"actor_id,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	ClientIP    string `json:"client_ip,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	Device      string `json:"device,omitempty"`
}

type AuditEvent string

const (
	EventPersonCreated AuditEvent = "person_created"
	EventPersonUpdated AuditEvent = "person_updated"
	EventPersonDeleted AuditEvent = "person_deleted"

	EventSkillCreated AuditEvent = "skill_created"
	EventSkillUpdated AuditEvent = "skill_updated"
	EventSkillDeleted AuditEvent = "skill_deleted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventPersonDeleted: CategoryCompliance,
	EventSkillDeleted:  CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events for later inspection.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
