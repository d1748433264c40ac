package event

import (
	"encoding/json"
	"time"
)

// Type enumerates the domain event types emitted on user state transitions.
type Type string

const (
	TypeUserCreated Type = "USER_CREATED"
	TypeUserDeleted Type = "USER_DELETED"
)

// timestampLayout is ISO-8601 UTC with millisecond precision and a
// trailing Z. Consumers on the stream depend on this exact shape.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// UserEvent is an immutable fact describing a completed user state
// transition. Instances are transient: constructed after the store
// write commits, handed to the publisher and discarded.
type UserEvent struct {
	EventType Type
	UserEmail string
	Timestamp time.Time
}

// NewUserCreated builds a USER_CREATED event stamped with the current time.
func NewUserCreated(email string) UserEvent {
	return UserEvent{EventType: TypeUserCreated, UserEmail: email, Timestamp: time.Now().UTC()}
}

// NewUserDeleted builds a USER_DELETED event stamped with the current time.
func NewUserDeleted(email string) UserEvent {
	return UserEvent{EventType: TypeUserDeleted, UserEmail: email, Timestamp: time.Now().UTC()}
}

func (e UserEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventType string `json:"eventType"`
		UserEmail string `json:"userEmail"`
		Timestamp string `json:"timestamp"`
	}{
		EventType: string(e.EventType),
		UserEmail: e.UserEmail,
		Timestamp: e.Timestamp.UTC().Format(timestampLayout),
	})
}
