// Command mcp exposes the gateway's tools over the MCP streamable-HTTP
// transport, so agent hosts can call supervisor/escalation/summarize
// operations with the exact tool names of the REST surface.
package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/auth"
	"github.com/spec-kit/support-gateway/internal/config"
	"github.com/spec-kit/support-gateway/internal/domain"
	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/fetch"
	"github.com/spec-kit/support-gateway/internal/observability"
	"github.com/spec-kit/support-gateway/internal/repository"
	"github.com/spec-kit/support-gateway/internal/search"
	"github.com/spec-kit/support-gateway/internal/service"
	"github.com/spec-kit/support-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cache := fetch.NewPageCache(cfg.Cache, logger)
	defer cache.Close()

	fetcher := fetch.NewFetcher(cfg.Fetcher, cache, logger)
	gateway := search.NewGateway(cfg.Search, logger)

	dispatcher := events.NewInMemoryDispatcher()
	escalationRepo := repository.NewMemoryEscalationRepository()

	supportService := service.NewSupportService(escalationRepo, dispatcher, logger)
	searchService := service.NewSearchService(gateway, cfg.Search.MaxResults)
	supervisorService := service.NewSupervisorService(service.SupervisorDependencies{
		Escalations:   escalationRepo,
		Support:       supportService,
		Search:        searchService,
		Dispatcher:    dispatcher,
		Logger:        logger,
		DefaultEngine: cfg.Search.DefaultEngine,
	})
	escalationService := service.NewEscalationService(escalationRepo, dispatcher)
	summaryService := service.NewSummaryService(fetcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	s := server.NewMCPServer(cfg.App.Name, cfg.App.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("validate",
			mcp.WithDescription("Return the configured service identity string"),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(cfg.Auth.Identity), nil
		},
	)

	s.AddTool(
		mcp.NewTool("supervisor",
			mcp.WithDescription("Route a user query to customer care or web search, escalating urgent or unanswerable queries to a human operator"),
			mcp.WithString("query", mcp.Required(), mcp.Description("User query or problem")),
			mcp.WithString("intent", mcp.Description("Optional intent hint (e.g. 'search' or 'support')")),
			mcp.WithNumber("priority", mcp.Description("Priority 1-5 (5 urgent)")),
			mcp.WithString("search_engine", mcp.Description("Which search engine to use (default: duckduckgo)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query := req.GetString("query", "")
			intent := req.GetString("intent", "")
			priority := req.GetInt("priority", domain.PriorityDefault)
			engine := req.GetString("search_engine", "")

			response, err := supervisorService.Route(ctx, query, intent, priority, engine)
			if err != nil {
				return nil, err
			}
			return mcp.NewToolResultText(response), nil
		},
	)

	s.AddTool(
		mcp.NewTool("list_escalations",
			mcp.WithDescription("List current escalations (human operators only)"),
			mcp.WithString("status", mcp.Description("Filter by status: open|resolved")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			rendered, err := escalationService.ListRendered(ctx, req.GetString("status", ""))
			if err != nil {
				return nil, err
			}
			return mcp.NewToolResultText(rendered), nil
		},
	)

	s.AddTool(
		mcp.NewTool("respond_escalation",
			mcp.WithDescription("Provide a human response to an escalation ticket (resolves ticket)"),
			mcp.WithNumber("ticket_id", mcp.Required(), mcp.Description("Escalation ticket id")),
			mcp.WithString("human_response", mcp.Required(), mcp.Description("Human's reply text")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ticketID := req.GetInt("ticket_id", 0)
			response := req.GetString("human_response", "")
			ack, err := escalationService.Respond(ctx, int64(ticketID), response)
			if err != nil {
				return nil, err
			}
			return mcp.NewToolResultText(ack), nil
		},
	)

	s.AddTool(
		mcp.NewTool("summarize_url",
			mcp.WithDescription("Summarize a web page (readability extraction plus sentence trimming)"),
			mcp.WithString("url", mcp.Required(), mcp.Description("URL to summarize")),
			mcp.WithNumber("sentences", mcp.Description("Approx. sentences")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			url := req.GetString("url", "")
			sentences := req.GetInt("sentences", 3)
			summary, err := summaryService.SummarizeURL(ctx, url, sentences)
			if err != nil {
				return nil, err
			}
			return mcp.NewToolResultText(summary), nil
		},
	)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	httpServer := server.NewStreamableHTTPServer(s)
	handler := requireBearer(httpServer, cfg.Auth.ServiceToken, tokenManager)

	logger.Info("starting mcp server", zap.String("addr", cfg.App.Addr()))
	if err := http.ListenAndServe(cfg.App.Addr(), handler); err != nil {
		logger.Fatal("mcp listen", zap.Error(err))
	}
}

// requireBearer gates the MCP endpoint behind the same tokens as the REST
// surface: the static service token or a signed operator JWT.
func requireBearer(next http.Handler, serviceToken string, tokens *auth.TokenManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		token := parts[1]
		if subtle.ConstantTimeCompare([]byte(token), []byte(serviceToken)) == 1 {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := tokens.ParseToken(token); err == nil {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}
