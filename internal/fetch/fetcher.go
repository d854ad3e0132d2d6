// Package fetch retrieves remote pages and reduces HTML payloads to
// readable text. HTTP failures are hard errors; pages that fetch fine but
// yield no extractable article degrade to a sentinel body instead of
// failing the caller.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/config"
	"github.com/spec-kit/support-gateway/internal/domain"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// maxBodyBytes caps how much of a response is read into memory.
const maxBodyBytes = 8 << 20

// Fetcher performs single-shot GETs with redirect following and a fixed
// timeout. A nil cache disables page caching.
type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     *PageCache
	logger    *zap.Logger
}

// NewFetcher builds a fetcher from config. cache and logger may be nil.
func NewFetcher(cfg config.FetcherConfig, cache *PageCache, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout()},
		userAgent: cfg.UserAgent,
		cache:     cache,
		logger:    logger,
	}
}

// Fetch retrieves url and returns its content. HTML responses are reduced to
// readable markdown unless forceRaw is set; anything else passes through
// verbatim with a note naming the original content type.
func (f *Fetcher) Fetch(ctx context.Context, url, userAgent string, forceRaw bool) (domain.FetchResult, error) {
	if !forceRaw {
		if cached, ok := f.cache.Get(ctx, url); ok {
			return domain.FetchResult{Body: cached}, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.FetchResult{}, apperrors.NewInvalidParams(fmt.Sprintf("invalid url %q", url), nil)
	}
	ua := userAgent
	if ua == "" {
		ua = f.userAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.FetchResult{}, apperrors.NewInternalError(fmt.Sprintf("failed to fetch %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.FetchResult{}, apperrors.NewInternalError(
			fmt.Sprintf("failed to fetch %s - status %d", url, resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.FetchResult{}, apperrors.NewInternalError(fmt.Sprintf("failed to read %s", url), err)
	}
	text := string(raw)

	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(contentType, "text/html")

	if isHTML && !forceRaw {
		body, degraded := ExtractReadable(text, url)
		if !degraded {
			f.cache.Put(ctx, url, body)
		} else {
			f.logger.Debug("page simplify degraded", zap.String("url", url))
		}
		return domain.FetchResult{Body: body, Degraded: degraded}, nil
	}

	return domain.FetchResult{
		Body: text,
		Note: fmt.Sprintf("Raw content with content-type: %s\n", contentType),
	}, nil
}
