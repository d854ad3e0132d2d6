package domain

import "time"

// TicketStatus enumerates lifecycle states for escalation tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
)

// Ticket origin tags identify the requester class. The automated agents
// always escalate on behalf of an end user.
const TicketOriginUser = "user"

// Priority bounds for escalation tickets; PriorityUrgent forces immediate
// escalation in the supervisor regardless of query content.
const (
	PriorityMin     = 1
	PriorityDefault = 3
	PriorityUrgent  = 5
	PriorityMax     = 5
)

// Ticket is one escalation awaiting (or holding) a human resolution.
// IDs are positive, unique, and strictly increasing in creation order.
// HumanResponse is nil while the ticket is open.
type Ticket struct {
	ID            int64
	Query         string
	Origin        string
	Priority      int
	Status        TicketStatus
	HumanResponse *string
	CreatedAt     time.Time
}

// Resolved reports whether the ticket carries a human response.
func (t *Ticket) Resolved() bool {
	return t.Status == TicketStatusResolved
}

// ValidPriority reports whether p is inside the accepted 1..5 range.
func ValidPriority(p int) bool {
	return p >= PriorityMin && p <= PriorityMax
}
