package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/support-gateway/internal/domain"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// EscalationRepository owns the escalation ticket collection. The queue is
// volatile by design: it lives for the process lifetime only.
type EscalationRepository interface {
	// Create assigns the next id, stores an open ticket, and returns it.
	Create(ctx context.Context, query string, priority int) (*domain.Ticket, error)
	// List returns tickets in creation order. An empty statusFilter returns
	// all tickets; any non-empty filter is matched literally against the
	// status, so values outside the enum yield an empty result.
	List(ctx context.Context, statusFilter string) ([]domain.Ticket, error)
	// Resolve sets the human response and marks the ticket resolved.
	// Resolving an already-resolved ticket overwrites the prior response.
	Resolve(ctx context.Context, id int64, humanResponse string) (*domain.Ticket, error)
}

// memoryEscalationRepository keeps tickets in creation order behind a mutex.
// The counter increment and append form one critical section so concurrent
// creates never hand out duplicate ids.
type memoryEscalationRepository struct {
	mu      sync.Mutex
	nextID  int64
	tickets []domain.Ticket
}

// NewMemoryEscalationRepository builds the in-process store. IDs start at 1
// and are never reused within a process lifetime.
func NewMemoryEscalationRepository() EscalationRepository {
	return &memoryEscalationRepository{nextID: 1}
}

func (r *memoryEscalationRepository) Create(_ context.Context, query string, priority int) (*domain.Ticket, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewInvalidParams("query must not be empty", nil)
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewInvalidParams("priority must be between 1 and 5", map[string]any{"priority": priority})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ticket := domain.Ticket{
		ID:        r.nextID,
		Query:     query,
		Origin:    domain.TicketOriginUser,
		Priority:  priority,
		Status:    domain.TicketStatusOpen,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.tickets = append(r.tickets, ticket)

	created := ticket
	return &created, nil
}

func (r *memoryEscalationRepository) List(_ context.Context, statusFilter string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if statusFilter != "" && string(t.Status) != statusFilter {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *memoryEscalationRepository) Resolve(_ context.Context, id int64, humanResponse string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID != id {
			continue
		}
		response := humanResponse
		r.tickets[i].HumanResponse = &response
		r.tickets[i].Status = domain.TicketStatusResolved
		resolved := r.tickets[i]
		return &resolved, nil
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": strconv.FormatInt(id, 10)})
}
