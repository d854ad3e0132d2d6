package dto

import "time"

// SupervisorRequest is the entry-point payload.
type SupervisorRequest struct {
	Query        string `json:"query"`
	Intent       string `json:"intent,omitempty"`
	Priority     int    `json:"priority,omitempty"`
	SearchEngine string `json:"search_engine,omitempty"`
}

// ToolResponse wraps the text a tool produced.
type ToolResponse struct {
	Response string `json:"response"`
}

// RespondEscalationRequest is the human operator's reply payload.
type RespondEscalationRequest struct {
	HumanResponse string `json:"human_response"`
}

// SummarizeRequest asks for a bounded summary of a page.
type SummarizeRequest struct {
	URL       string `json:"url"`
	Sentences int    `json:"sentences,omitempty"`
}

// OperatorTokenRequest mints an operator JWT.
type OperatorTokenRequest struct {
	Operator string `json:"operator"`
}

// OperatorTokenResponse carries the minted token.
type OperatorTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateResponse carries the configured service identity.
type ValidateResponse struct {
	Identity string `json:"identity"`
}
