package llm

import (
	"regexp"
	"strings"

	"github.com/brandscope/brandscope/internal/domain"
)

// urlPattern matches http(s) URLs embedded in answer text. Closing
// punctuation that commonly follows a URL in prose is excluded so that
// "see https://example.com)." captures the bare URL.
var urlPattern = regexp.MustCompile(`https?://[^\s)>\]]+`)

// ScrapeReferences extracts source references from URLs embedded in an
// answer. It is the fallback attribution path for providers without
// grounding metadata: the reference carries only the URL, deduplicated
// in order of first appearance.
func ScrapeReferences(text string) []domain.Reference {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	refs := make([]domain.Reference, 0, len(matches))
	for _, match := range matches {
		url := strings.TrimRight(match, ".,;:!?\"'")
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		refs = append(refs, domain.Reference{URL: url})
	}
	return refs
}
