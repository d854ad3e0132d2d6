package events

import (
	"time"

	"github.com/spec-kit/support-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEscalationCreated  EventType = "escalation_created"
	EventEscalationResolved EventType = "escalation_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EscalationCreatedPayload payload.
type EscalationCreatedPayload struct {
	Query    string `json:"query"`
	Origin   string `json:"origin"`
	Priority int    `json:"priority"`
}

// EscalationResolvedPayload payload.
type EscalationResolvedPayload struct {
	Status        domain.TicketStatus `json:"status"`
	HumanResponse string              `json:"human_response"`
}
