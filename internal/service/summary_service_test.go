package service

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
	"github.com/spec-kit/support-gateway/internal/fetch"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

func newTestSummaryService() *SummaryService {
	fetcher := fetch.NewFetcher(config.FetcherConfig{UserAgent: "test-agent/1.0", TimeoutSeconds: 5}, nil, zap.NewNop())
	return NewSummaryService(fetcher)
}

func TestSummarizeURLTrimsToSentenceBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Tea</title></head><body><article>
<h1>Tea</h1>
<p>Tea is an aromatic beverage prepared by pouring hot water over cured leaves.
It is the second most consumed drink in the world after water.
Originating in East Asia, tea spread along trade routes over many centuries.
Today it is grown commercially on every inhabited continent except Europe.
Processing methods distinguish the major varieties from a single plant species.</p>
</article></body></html>`)
	}))
	defer srv.Close()

	summary, err := newTestSummaryService().SummarizeURL(context.Background(), srv.URL, 2)
	require.NoError(t, err)

	assert.Contains(t, summary, "aromatic beverage")
	assert.NotContains(t, summary, "inhabited continent")
}

func TestSummarizeURLDegradedPageFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	_, err := newTestSummaryService().SummarizeURL(context.Background(), srv.URL, 3)
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "INTERNAL", de.Code)
	assert.Equal(t, "Failed to fetch content.", de.Message)
}

func TestSummarizeURLPropagatesFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestSummaryService().SummarizeURL(context.Background(), srv.URL, 3)
	require.Error(t, err)
	assert.Equal(t, "INTERNAL", apperrors.ToDomainError(err).Code)
}
