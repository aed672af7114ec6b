package news

import (
	"net/url"
	"strings"

	"github.com/deusflow/newsflow/internal/metrics"
)

// titleKeyWords is how much of the title participates in the composite key.
const titleKeyWords = 10

// Domain extracts the lowercased host from a link, without the www prefix.
func Domain(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// CompositeKey identifies a story republished under several URLs on the same
// site: same domain, same publication date, same leading title words.
func CompositeKey(a Article) string {
	words := strings.Fields(strings.ToLower(a.Title))
	if len(words) > titleKeyWords {
		words = words[:titleKeyWords]
	}
	return Domain(a.NormalizedURL) + "|" + a.Date.Format("2006-01-02") + "|" + strings.Join(words, " ")
}

// Dedup drops articles that share either a normalized URL or a composite key
// with an earlier article. Input order is preserved, so with a fixed adapter
// order first-seen-wins is deterministic.
func Dedup(articles []Article) []Article {
	seenURLs := make(map[string]struct{}, len(articles))
	seenKeys := make(map[string]struct{}, len(articles))
	kept := make([]Article, 0, len(articles))

	for _, a := range articles {
		if _, dup := seenURLs[a.NormalizedURL]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		key := CompositeKey(a)
		if _, dup := seenKeys[key]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seenURLs[a.NormalizedURL] = struct{}{}
		seenKeys[key] = struct{}{}
		kept = append(kept, a)
	}
	return kept
}
