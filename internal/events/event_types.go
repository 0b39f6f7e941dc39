package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated       EventType = "user_created"
	EventUserUpdated       EventType = "user_updated"
	EventUserDeleted       EventType = "user_deleted"
	EventCondominioCreated EventType = "condominio_created"
	EventCondominioUpdated EventType = "condominio_updated"
	EventCondominioDeleted EventType = "condominio_deleted"
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventLogout            EventType = "logout"
)

// AllEventTypes lists every type, in declaration order.
var AllEventTypes = []EventType{
	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
	EventCondominioCreated,
	EventCondominioUpdated,
	EventCondominioDeleted,
	EventLoginSucceeded,
	EventLoginFailed,
	EventLogout,
}

// Actor identifies who triggered the event. A zero UserID means anonymous.
type Actor struct {
	UserID int64  `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID int64     `json:"resource_id,omitempty"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, resourceID int64, actor Actor, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// UserChangedPayload describes a user write.
type UserChangedPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CondominioChangedPayload describes a condominio write.
type CondominioChangedPayload struct {
	Name string `json:"name"`
}

// LoginFailedPayload records an unsuccessful login attempt.
type LoginFailedPayload struct {
	Email string `json:"email"`
}
