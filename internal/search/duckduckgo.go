package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/config"
	"github.com/spec-kit/support-gateway/internal/domain"
)

// defaultDuckDuckGoURL is the HTML (non-JS) results endpoint.
const defaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// resultAnchorSelector matches result links on the DDG HTML results page.
const resultAnchorSelector = "a.result__a"

// DuckDuckGo scrapes the HTML results page of duckduckgo.com.
type DuckDuckGo struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *zap.Logger
}

// NewDuckDuckGo builds the backend from config.
func NewDuckDuckGo(cfg config.SearchConfig, logger *zap.Logger) *DuckDuckGo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuckDuckGo{
		client:    &http.Client{Timeout: cfg.Timeout()},
		baseURL:   defaultDuckDuckGoURL,
		userAgent: "support-gateway/1.0",
		logger:    logger,
	}
}

// NewDuckDuckGoWithBase builds the backend against a custom results URL.
// Used by tests to point at a fake backend.
func NewDuckDuckGoWithBase(cfg config.SearchConfig, baseURL string, logger *zap.Logger) *DuckDuckGo {
	d := NewDuckDuckGo(cfg, logger)
	d.baseURL = baseURL
	return d
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Links searches and returns up to maxResults result URLs. Only hrefs whose
// scheme portion starts with "http" are kept.
func (d *DuckDuckGo) Links(ctx context.Context, query string, maxResults int) []string {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	endpoint := d.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return []string{domain.SentinelSearchFailed}
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("search request failed", zap.String("query", query), zap.Error(err))
		return []string{domain.SentinelSearchFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Debug("search returned non-200", zap.Int("status", resp.StatusCode))
		return []string{domain.SentinelSearchFailed}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return []string{domain.SentinelSearchFailed}
	}

	var links []string
	doc.Find(resultAnchorSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if ok && strings.HasPrefix(href, "http") {
			links = append(links, href)
		}
		return len(links) < maxResults
	})

	if len(links) == 0 {
		return []string{domain.SentinelNoResults}
	}
	return links
}
