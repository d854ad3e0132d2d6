// Package search issues queries to HTML search backends and scrapes result
// links. The gateway never returns an error from a search: transport
// failures and empty result pages both degrade to sentinel link lists so
// callers see a uniform "no usable result" shape.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/config"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// DefaultMaxResults bounds a search when the caller does not.
const DefaultMaxResults = 6

// Engine abstracts a web search backend.
type Engine interface {
	// Links performs a search and returns result URLs, or a single-element
	// sentinel list on degradation. It never fails.
	Links(ctx context.Context, query string, maxResults int) []string
	// Name returns the backend identifier (e.g. "duckduckgo").
	Name() string
}

// Gateway resolves engine names to backends.
type Gateway struct {
	engines map[string]Engine
	def     string
}

// NewGateway registers the supported engines.
func NewGateway(cfg config.SearchConfig, logger *zap.Logger) *Gateway {
	ddg := NewDuckDuckGo(cfg, logger)
	return &Gateway{
		engines: map[string]Engine{
			"duckduckgo": ddg,
			"ddg":        ddg,
		},
		def: cfg.DefaultEngine,
	}
}

// Register adds or replaces a backend under name. Names are matched
// case-insensitively at resolve time.
func (g *Gateway) Register(name string, engine Engine) {
	g.engines[strings.ToLower(name)] = engine
}

// DefaultEngine returns the configured default engine name.
func (g *Gateway) DefaultEngine() string {
	return g.def
}

// Resolve returns the backend for name, or an INVALID_PARAMS error for an
// unsupported engine.
func (g *Gateway) Resolve(name string) (Engine, error) {
	engine, ok := g.engines[strings.ToLower(name)]
	if !ok {
		return nil, apperrors.NewInvalidParams("unsupported engine: "+name, map[string]any{"engine": name})
	}
	return engine, nil
}
