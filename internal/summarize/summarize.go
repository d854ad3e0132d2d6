// Package summarize produces bounded extractive summaries. There is no
// abstractive model behind it: a summary is the first n sentence fragments
// of the normalized input.
package summarize

import "strings"

// DefaultSentenceCount is applied when the caller requests zero or fewer
// sentences.
const DefaultSentenceCount = 3

const sentenceDelimiter = ". "

// Sentences normalizes whitespace and truncates text to roughly n sentences.
// Splitting is on the literal ". " delimiter; abbreviations, decimals, and
// quoted periods are not handled. A trailing period is appended only when
// the source held at least n fragments, so nothing is fabricated for short
// inputs.
func Sentences(text string, n int) string {
	if n <= 0 {
		n = DefaultSentenceCount
	}

	normalized := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))

	var fragments []string
	for _, part := range strings.Split(normalized, sentenceDelimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fragments = append(fragments, part)
	}

	kept := fragments
	if len(kept) > n {
		kept = kept[:n]
	}

	out := strings.Join(kept, sentenceDelimiter)
	if len(fragments) >= n && out != "" {
		out += "."
	}
	return out
}
