package event

import (
	"time"

	"github.com/google/uuid"
)

// Event carries a payload published under a topic.
type Event[T any] struct {
	Type     Topic
	Payload  T
	Metadata Metadata
}

// Metadata is stamped on every event by NewEvent.
type Metadata struct {
	ID        string
	Timestamp time.Time

	// Source is the ID of the editor that published the event.
	Source string

	// CorrelationID ties the will-change and changed events of one edit
	// together. Empty for selection events.
	CorrelationID string
}

// NewEvent stamps payload with a fresh ID and the current time.
func NewEvent[T any](topic Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// WithCorrelation returns a copy of e carrying id.
func (e Event[T]) WithCorrelation(id string) Event[T] {
	e.Metadata.CorrelationID = id
	return e
}

func (e Event[T]) EventTopic() Topic       { return e.Type }
func (e Event[T]) EventMetadata() Metadata { return e.Metadata }

// TopicProvider is the minimum the bus needs from a published value.
type TopicProvider interface {
	EventTopic() Topic
}

// MetadataProvider is implemented by every Event.
type MetadataProvider interface {
	EventMetadata() Metadata
}
