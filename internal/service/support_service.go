package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/domain"
	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/repository"
)

const careFmt = "📞 Customer Care: %s"

// faqRule maps a keyword to its canned answer. Rule order is the tie-break
// policy: the first matching key wins when a query matches several.
type faqRule struct {
	keyword string
	answer  string
}

// faqRules is the fixed, ordered rule set. Matching is case-insensitive
// substring containment.
var faqRules = []faqRule{
	{"refund", "Our refund policy: please request within 14 days at https://example.com/refund. Refunds processed in 5-7 business days."},
	{"tracking", "To track your order use the tracking link emailed to you, or visit https://example.com/track and enter order id."},
	{"cancel", "Orders can be cancelled within 2 hours of purchase from your orders page."},
	{"warranty", "All electronics have a 1-year limited warranty (see https://example.com/warranty)."},
}

// SupportService answers from the FAQ rule set or escalates to a human.
type SupportService struct {
	escalations repository.EscalationRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewSupportService constructs the responder.
func NewSupportService(escalations repository.EscalationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SupportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportService{escalations: escalations, dispatcher: dispatcher, logger: logger}
}

// Respond matches the query against the rule set; when no rule matches it
// creates a default-priority escalation and acknowledges with the ticket id.
func (s *SupportService) Respond(ctx context.Context, query string) (string, error) {
	qLower := strings.ToLower(query)
	for _, rule := range faqRules {
		if strings.Contains(qLower, rule.keyword) {
			return fmt.Sprintf(careFmt, rule.answer), nil
		}
	}

	ticket, err := s.escalations.Create(ctx, query, domain.PriorityDefault)
	if err != nil {
		return "", err
	}
	s.publishCreated(ctx, ticket)
	s.logger.Info("support escalation created", zap.Int64("ticket_id", ticket.ID))

	return fmt.Sprintf(careFmt, fmt.Sprintf(
		"I couldn't confidently answer — I've created an escalation (id=%d) for a human operator to handle.", ticket.ID)), nil
}

func (s *SupportService) publishCreated(ctx context.Context, ticket *domain.Ticket) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:     events.EventEscalationCreated,
		TicketID: ticket.ID,
		Payload: events.EscalationCreatedPayload{
			Query:    ticket.Query,
			Origin:   ticket.Origin,
			Priority: ticket.Priority,
		},
	})
}
