package domain

// RouteKind enumerates the supervisor's dispatch targets.
type RouteKind int

const (
	// EscalateNow bypasses both agents and opens a ticket immediately.
	EscalateNow RouteKind = iota
	// RouteToSearch delegates to the web search agent.
	RouteToSearch
	// RouteToSupport delegates to the rule-based support responder.
	RouteToSupport
)

func (k RouteKind) String() string {
	switch k {
	case EscalateNow:
		return "escalate"
	case RouteToSearch:
		return "search"
	case RouteToSupport:
		return "support"
	default:
		return "unknown"
	}
}

// RouteDecision is the pure output of the supervisor's routing rules.
// Engine is set only for RouteToSearch.
type RouteDecision struct {
	Kind   RouteKind
	Engine string
}
