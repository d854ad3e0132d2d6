package domain

// Sentinel bodies surfaced on soft failures. Callers that still speak the
// string protocol (transports, end users) see these verbatim; in-process
// callers should branch on FetchResult.Degraded instead.
const (
	SentinelSimplifyFailed = "<error>Failed to simplify page</error>"
	SentinelSearchFailed   = "<error>Search failed</error>"
	SentinelNoResults      = "<error>No results found</error>"
)

// FetchResult is the transient outcome of a content fetch. Body holds either
// the simplified readable text or the raw payload; Note is non-empty only
// when raw content was returned and names the original content type.
// Degraded marks a soft failure: the fetch itself succeeded but no readable
// article could be extracted, and Body carries SentinelSimplifyFailed.
type FetchResult struct {
	Body     string
	Note     string
	Degraded bool
}
