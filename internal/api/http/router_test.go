package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/api/http/handlers"
	"github.com/spec-kit/support-gateway/internal/auth"
	"github.com/spec-kit/support-gateway/internal/config"
	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/fetch"
	"github.com/spec-kit/support-gateway/internal/observability"
	"github.com/spec-kit/support-gateway/internal/repository"
	"github.com/spec-kit/support-gateway/internal/search"
	"github.com/spec-kit/support-gateway/internal/service"
)

const (
	testServiceToken = "test-service-token"
	testIdentity     = "support-gateway-test"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	searchCfg := config.SearchConfig{DefaultEngine: "duckduckgo", TimeoutSeconds: 5, MaxResults: 6}
	gateway := search.NewGateway(searchCfg, logger)
	fetcher := fetch.NewFetcher(config.FetcherConfig{UserAgent: "test-agent/1.0", TimeoutSeconds: 5}, nil, logger)

	dispatcher := events.NewInMemoryDispatcher()
	repo := repository.NewMemoryEscalationRepository()

	support := service.NewSupportService(repo, dispatcher, logger)
	searcher := service.NewSearchService(gateway, searchCfg.MaxResults)
	supervisor := service.NewSupervisorService(service.SupervisorDependencies{
		Escalations:   repo,
		Support:       support,
		Search:        searcher,
		Dispatcher:    dispatcher,
		Logger:        logger,
		DefaultEngine: searchCfg.DefaultEngine,
	})
	escalations := service.NewEscalationService(repo, dispatcher)
	summaries := service.NewSummaryService(fetcher)

	tokenManager := auth.NewTokenManager("test-jwt-secret", 30)
	authMiddleware := auth.NewAuthMiddleware(testServiceToken, tokenManager)

	app := fiber.New(fiber.Config{AppName: "support-gateway-test"})
	RegisterMiddlewares(app, logger, metrics, 10*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Tools:          handlers.NewToolsHandler(supervisor, summaries, metrics, testIdentity),
		Escalations:    handlers.NewEscalationsHandler(escalations, metrics),
		Auth:           handlers.NewAuthHandler(tokenManager),
		AuthMiddleware: authMiddleware,
	})
	return app, tokenManager
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func dataResponse(t *testing.T, body map[string]any) string {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data envelope, got %v", body)
	response, _ := data["response"].(string)
	return response
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	code, _ := errObj["code"].(string)
	return code
}

func TestHealthEndpointsArePublic(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, nethttp.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, _ = doJSON(t, app, nethttp.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestProtectedRoutesRejectMissingOrBadToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/v1/validate", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	status, body = doJSON(t, app, nethttp.MethodGet, "/v1/validate", "wrong-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestValidateReturnsConfiguredIdentity(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/v1/validate", testServiceToken, nil)
	require.Equal(t, nethttp.StatusOK, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testIdentity, data["identity"])
}

func TestSupervisorEndpointAnswersFAQ(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/v1/supervisor", testServiceToken,
		map[string]any{"query": "What is your refund policy?"})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, dataResponse(t, body), "Our refund policy")
}

func TestSupervisorEndpointValidatesPayload(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/v1/supervisor", testServiceToken,
		map[string]any{"intent": "support"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PARAMS", errorCode(t, body))

	status, body = doJSON(t, app, nethttp.MethodPost, "/v1/supervisor", testServiceToken,
		map[string]any{"query": "help", "priority": 9})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PARAMS", errorCode(t, body))
}

func TestEscalationLifecycleOverHTTP(t *testing.T) {
	app, tokens := newTestApp(t)

	operatorToken, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	status, body := doJSON(t, app, nethttp.MethodPost, "/v1/supervisor", testServiceToken,
		map[string]any{"query": "everything is on fire", "priority": 5})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, dataResponse(t, body), "escalated to human operator with id=1")

	status, body = doJSON(t, app, nethttp.MethodGet, "/v1/escalations?status=open", operatorToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "id=1 | priority=5 | status=open | query=everything is on fire", dataResponse(t, body))

	status, body = doJSON(t, app, nethttp.MethodPost, "/v1/escalations/1/respond", operatorToken,
		map[string]any{"human_response": "Fire extinguished."})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Escalation id=1 marked resolved. Human response:\n\nFire extinguished.", dataResponse(t, body))

	status, body = doJSON(t, app, nethttp.MethodGet, "/v1/escalations?status=open", operatorToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "No escalations.", dataResponse(t, body))
}

func TestRespondUnknownEscalationIs404(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/v1/escalations/42/respond", testServiceToken,
		map[string]any{"human_response": "hello"})
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	status, body = doJSON(t, app, nethttp.MethodPost, "/v1/escalations/abc/respond", testServiceToken,
		map[string]any{"human_response": "hello"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PARAMS", errorCode(t, body))
}

func TestOperatorTokenMintingRequiresServiceToken(t *testing.T) {
	app, tokens := newTestApp(t)

	operatorToken, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	status, body := doJSON(t, app, nethttp.MethodPost, "/auth/operator/token", operatorToken,
		map[string]any{"operator": "bob"})
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	status, body = doJSON(t, app, nethttp.MethodPost, "/auth/operator/token", testServiceToken,
		map[string]any{"operator": "bob"})
	require.Equal(t, nethttp.StatusOK, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	minted, _ := data["token"].(string)
	require.NotEmpty(t, minted)

	claims, err := tokens.ParseToken(minted)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Operator)
}
