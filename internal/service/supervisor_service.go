package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/domain"
	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/repository"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// SupervisorService is the single entry point for user queries. It applies
// the priority/intent/keyword rules to pick a handler, or escalates
// directly when the priority override fires.
type SupervisorService struct {
	escalations repository.EscalationRepository
	support     *SupportService
	searcher    *SearchService
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	defEngine   string
}

// SupervisorDependencies bundles collaborators for the router.
type SupervisorDependencies struct {
	Escalations   repository.EscalationRepository
	Support       *SupportService
	Search        *SearchService
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	DefaultEngine string
}

// NewSupervisorService constructs the router.
func NewSupervisorService(deps SupervisorDependencies) *SupervisorService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := deps.DefaultEngine
	if engine == "" {
		engine = "duckduckgo"
	}
	return &SupervisorService{
		escalations: deps.Escalations,
		support:     deps.Support,
		searcher:    deps.Search,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		defEngine:   engine,
	}
}

// Decide applies the routing rules to the inputs and returns the dispatch
// target. Pure function, evaluated first-match-wins in this exact order:
// priority override, search signals, support signals, default to support.
func (s *SupervisorService) Decide(query, intent string, priority int, engine string) domain.RouteDecision {
	if priority >= domain.PriorityUrgent {
		return domain.RouteDecision{Kind: domain.EscalateNow}
	}

	il := strings.ToLower(intent)
	ql := strings.ToLower(query)

	if strings.Contains(il, "search") || il == "web" ||
		strings.Contains(ql, "find") || strings.Contains(ql, "look for") {
		if engine == "" {
			engine = s.defEngine
		}
		return domain.RouteDecision{Kind: domain.RouteToSearch, Engine: engine}
	}

	if strings.Contains(il, "support") ||
		strings.Contains(ql, "refund") || strings.Contains(ql, "tracking") || strings.Contains(ql, "cancel") {
		return domain.RouteDecision{Kind: domain.RouteToSupport}
	}

	// No signal: support guarantees an FAQ answer or an escalation, never a
	// silent drop.
	return domain.RouteDecision{Kind: domain.RouteToSupport}
}

// Route dispatches query to the chosen handler and returns its response.
// priority defaults to 3 when zero; values outside 1..5 are rejected.
func (s *SupervisorService) Route(ctx context.Context, query, intent string, priority int, engine string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", apperrors.NewInvalidParams("query must not be empty", nil)
	}
	if priority == 0 {
		priority = domain.PriorityDefault
	}
	if !domain.ValidPriority(priority) {
		return "", apperrors.NewInvalidParams("priority must be between 1 and 5", map[string]any{"priority": priority})
	}

	decision := s.Decide(query, intent, priority, engine)
	s.logger.Debug("route decided",
		zap.String("kind", decision.Kind.String()),
		zap.Int("priority", priority))

	switch decision.Kind {
	case domain.EscalateNow:
		ticket, err := s.escalations.Create(ctx, query, priority)
		if err != nil {
			return "", err
		}
		s.publishCreated(ctx, ticket)
		s.logger.Info("urgent escalation created", zap.Int64("ticket_id", ticket.ID), zap.Int("priority", priority))
		return fmt.Sprintf("Supervisor: Urgent issue — escalated to human operator with id=%d.", ticket.ID), nil
	case domain.RouteToSearch:
		return s.searcher.Run(ctx, query, decision.Engine)
	default:
		return s.support.Respond(ctx, query)
	}
}

func (s *SupervisorService) publishCreated(ctx context.Context, ticket *domain.Ticket) {
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
