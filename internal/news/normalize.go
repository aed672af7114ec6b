package news

import (
	"net/url"
	"strings"
	"time"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/metrics"
)

// dateLayouts is the order publication dates are attempted in: ISO-8601 with
// and without timezone, bare dates, then the common RSS formats.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// NormalizeURL canonicalizes a link for dedup: scheme and host lowercased,
// query string and fragment stripped, trailing slash removed from the path.
// Anything that fails to parse comes back as the trimmed original so a weird
// provider link never aborts the pipeline.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}

// ResolveDate parses a free-form provider date down to a calendar date.
// Unparseable input defaults to today; the future check is the caller's job
// because a future date drops the whole article, not just the date.
func ResolveDate(raw string, today time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateOnly(today)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOnly(t)
		}
	}
	return DateOnly(today)
}

// Normalize attaches NormalizedURL and Date to every article and drops the
// ones that cannot enter the pipeline: missing url or title, or a publication
// date strictly after today (tomorrow's news is excluded, not retimed).
func Normalize(articles []Article, today time.Time) []Article {
	today = DateOnly(today)
	kept := make([]Article, 0, len(articles))
	for _, a := range articles {
		if strings.TrimSpace(a.URL) == "" || strings.TrimSpace(a.Title) == "" {
			continue
		}
		a.NormalizedURL = NormalizeURL(a.URL)
		a.Date = ResolveDate(a.PublishedAt, today)
		if a.Date.After(today) {
			logger.Debug("dropping future-dated article", "title", a.Title, "date", a.Date)
			metrics.Global.IncrementFutureDropped()
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
