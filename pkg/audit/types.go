package audit

import (
	"context"
	"time"
)

type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Event is one audit record.
type Event struct {
	ID        string         `json:"id" bson:"_id"`
	Action    string         `json:"action" bson:"action"`
	Result    Result         `json:"result" bson:"result"`
	Subject   string         `json:"subject,omitempty" bson:"subject,omitempty"`
	SessionID string         `json:"session_id,omitempty" bson:"session_id,omitempty"`
	RequestID string         `json:"request_id,omitempty" bson:"request_id,omitempty"`
	IP        string         `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Error     string         `json:"error,omitempty" bson:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Checksum  string         `json:"checksum" bson:"checksum"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

type EventOption func(*Event)

// WithSubject overrides the subject taken from the context, e.g. right
// after sign-in when the request carries no session yet.
func WithSubject(subject string) EventOption {
	return func(e *Event) {
		if subject != "" {
			e.Subject = subject
		}
	}
}

func WithSessionID(id string) EventOption {
	return func(e *Event) {
		if id != "" {
			e.SessionID = id
		}
	}
}

func WithUserAgent(ua string) EventOption {
	return func(e *Event) { e.UserAgent = ua }
}

func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

// Storage persists events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// Extractor reads a value for the event from the request context.
type Extractor func(ctx context.Context) (string, bool)
