package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/support-gateway/internal/search"
)

// listedLinks caps how many result links the agent echoes back; the gateway
// may have collected more.
const listedLinks = 4

// SearchService is the web search agent: it resolves an engine, runs the
// query, and renders the top links.
type SearchService struct {
	gateway    *search.Gateway
	maxResults int
}

// NewSearchService constructs the agent.
func NewSearchService(gateway *search.Gateway, maxResults int) *SearchService {
	if maxResults <= 0 {
		maxResults = search.DefaultMaxResults
	}
	return &SearchService{gateway: gateway, maxResults: maxResults}
}

// Run searches with the named engine and formats the results. An unsupported
// engine name is a hard INVALID_PARAMS error; degraded searches surface the
// gateway's sentinel link verbatim.
func (s *SearchService) Run(ctx context.Context, query, engineName string) (string, error) {
	if engineName == "" {
		engineName = s.gateway.DefaultEngine()
	}
	engine, err := s.gateway.Resolve(engineName)
	if err != nil {
		return "", err
	}

	links := engine.Links(ctx, query, s.maxResults)
	if len(links) > listedLinks {
		links = links[:listedLinks]
	}

	lines := make([]string, 0, len(links))
	for _, link := range links {
		lines = append(lines, "- "+link)
	}
	return fmt.Sprintf("🔎 Web Search (%s) results for: %s\n\n%s",
		engineName, query, strings.Join(lines, "\n")), nil
}
