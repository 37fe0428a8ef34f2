package queue

import (
	"time"

	"github.com/google/uuid"
)

type Meta struct {
	// Unique event ID
	ID string `json:"id"`
	// Trace / request correlation ID
	CorrelationID string `json:"correlation_id,omitempty"`
	// Emitting service
	Producer string `json:"producer,omitempty"`
	// Timestamp when the event was emitted
	Time time.Time `json:"time"`
	// Event name, e.g. session.reconnect
	Type string `json:"type"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// NewEnvelope stamps data with a fresh id and the current time.
func NewEnvelope(eventType string, data any) Envelope {
	id := uuid.NewString()
	return Envelope{
		Meta: Meta{
			ID:            id,
			CorrelationID: id,
			Producer:      "whatsapp-session-bridge",
			Time:          time.Now().UTC(),
			Type:          eventType,
		},
		Data: data,
	}
}
