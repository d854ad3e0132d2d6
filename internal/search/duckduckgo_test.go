package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/config"
	"github.com/spec-kit/support-gateway/internal/domain"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{DefaultEngine: "duckduckgo", TimeoutSeconds: 5, MaxResults: 6}
}

func resultsPage(hrefs ...string) string {
	page := "<html><body>"
	for _, href := range hrefs {
		page += fmt.Sprintf(`<a class="result__a" href="%s">result</a>`, href)
	}
	page += `<a class="other" href="https://ignored.example.com">not a result</a></body></html>`
	return page
}

func TestLinksParsesResultAnchors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		fmt.Fprint(w, resultsPage(
			"https://one.example.com",
			"javascript:void(0)",
			"https://two.example.com",
		))
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoWithBase(testSearchConfig(), srv.URL, zap.NewNop())
	links := ddg.Links(context.Background(), "anything at all", 6)

	assert.Equal(t, []string{"https://one.example.com", "https://two.example.com"}, links)
}

func TestLinksStopsAtMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage(
			"https://a.example.com",
			"https://b.example.com",
			"https://c.example.com",
			"https://d.example.com",
		))
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoWithBase(testSearchConfig(), srv.URL, zap.NewNop())
	links := ddg.Links(context.Background(), "query", 2)

	assert.Len(t, links, 2)
}

func TestLinksNoResultsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoWithBase(testSearchConfig(), srv.URL, zap.NewNop())
	links := ddg.Links(context.Background(), "query", 6)

	assert.Equal(t, []string{domain.SentinelNoResults}, links)
}

func TestLinksUnreachableBackendSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	ddg := NewDuckDuckGoWithBase(testSearchConfig(), srv.URL, zap.NewNop())
	links := ddg.Links(context.Background(), "query", 6)

	assert.Equal(t, []string{domain.SentinelSearchFailed}, links)
}

func TestLinksNon200Sentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoWithBase(testSearchConfig(), srv.URL, zap.NewNop())
	links := ddg.Links(context.Background(), "query", 6)

	assert.Equal(t, []string{domain.SentinelSearchFailed}, links)
}

func TestGatewayResolvesAliases(t *testing.T) {
	gw := NewGateway(testSearchConfig(), zap.NewNop())

	for _, name := range []string{"duckduckgo", "ddg", "DDG"} {
		engine, err := gw.Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, "duckduckgo", engine.Name())
	}
}

func TestGatewayRejectsUnsupportedEngine(t *testing.T) {
	gw := NewGateway(testSearchConfig(), zap.NewNop())

	_, err := gw.Resolve("altavista")
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "INVALID_PARAMS", de.Code)
	assert.Contains(t, de.Message, "altavista")
}
