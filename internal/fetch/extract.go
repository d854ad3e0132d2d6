package fetch

import (
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"

	"github.com/spec-kit/support-gateway/internal/domain"
)

// ExtractReadable reduces an HTML document to readable markdown. It never
// returns an error: malformed or non-article HTML must not abort the caller,
// so failures come back as the sentinel body with degraded set.
func ExtractReadable(html, pageURL string) (body string, degraded bool) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return domain.SentinelSimplifyFailed, true
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(article.Content)
	if err != nil || strings.TrimSpace(markdown) == "" {
		return domain.SentinelSimplifyFailed, true
	}
	return markdown, false
}
