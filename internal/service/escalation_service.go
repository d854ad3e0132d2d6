package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/repository"
)

// noEscalations is the fixed rendering of an empty listing.
const noEscalations = "No escalations."

// EscalationService exposes the human-operator view of the ticket queue.
type EscalationService struct {
	escalations repository.EscalationRepository
	dispatcher  events.Dispatcher
}

// NewEscalationService constructs the service.
func NewEscalationService(escalations repository.EscalationRepository, dispatcher events.Dispatcher) *EscalationService {
	return &EscalationService{escalations: escalations, dispatcher: dispatcher}
}

// ListRendered returns one line per ticket in creation order, optionally
// filtered by status. The filter is matched literally: unknown status
// strings simply yield the empty rendering.
func (s *EscalationService) ListRendered(ctx context.Context, statusFilter string) (string, error) {
	tickets, err := s.escalations.List(ctx, statusFilter)
	if err != nil {
		return "", err
	}
	if len(tickets) == 0 {
		return noEscalations, nil
	}

	lines := make([]string, 0, len(tickets))
	for _, t := range tickets {
		lines = append(lines, fmt.Sprintf("id=%d | priority=%d | status=%s | query=%s",
			t.ID, t.Priority, t.Status, t.Query))
	}
	return strings.Join(lines, "\n"), nil
}

// Respond resolves a ticket with the human's reply. Resolving an
// already-resolved ticket overwrites the previous response.
func (s *EscalationService) Respond(ctx context.Context, ticketID int64, humanResponse string) (string, error) {
	ticket, err := s.escalations.Resolve(ctx, ticketID, humanResponse)
	if err != nil {
		return "", err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:     events.EventEscalationResolved,
			TicketID: ticket.ID,
			Payload: events.EscalationResolvedPayload{
				Status:        ticket.Status,
				HumanResponse: humanResponse,
			},
		})
	}

	return fmt.Sprintf("Escalation id=%d marked resolved. Human response:\n\n%s", ticket.ID, humanResponse), nil
}
