package service

import (
	"context"

	"github.com/spec-kit/support-gateway/internal/fetch"
	"github.com/spec-kit/support-gateway/internal/summarize"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// SummaryService fetches a page and trims it to a sentence budget.
type SummaryService struct {
	fetcher *fetch.Fetcher
}

// NewSummaryService constructs the service.
func NewSummaryService(fetcher *fetch.Fetcher) *SummaryService {
	return &SummaryService{fetcher: fetcher}
}

// SummarizeURL fetches url and returns roughly sentences sentences of its
// readable content. A fetch that succeeds but yields no extractable article
// is a hard failure here: there is nothing to summarize.
func (s *SummaryService) SummarizeURL(ctx context.Context, url string, sentences int) (string, error) {
	result, err := s.fetcher.Fetch(ctx, url, "", false)
	if err != nil {
		return "", err
	}
	if result.Degraded {
		return "", apperrors.NewInternalError("Failed to fetch content.", nil)
	}
	return summarize.Sentences(result.Body, sentences), nil
}
