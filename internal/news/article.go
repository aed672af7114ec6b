package news

import "time"

// Source identifies the provider an article came from.
type Source string

const (
	SourceTavily   Source = "tavily"
	SourceBBC      Source = "bbc"
	SourceGuardian Source = "guardian"
	SourceGDELT    Source = "gdelt"
	SourceNewsData Source = "newsdata"
)

// Article is the common shape every adapter maps its provider response into.
// Adapters fill the raw fields only; NormalizedURL and Date are attached by
// Normalize and are what the rest of the pipeline keys on.
type Article struct {
	Title       string
	Description string
	Content     string
	Snippet     string
	URL         string
	PublishedAt string // raw provider date, parsed defensively later
	Source      Source

	NormalizedURL string
	Date          time.Time // publication date, never after the fetch date
}

// BestText returns the first non-empty body field, in the order the
// summarizer prefers them.
func (a Article) BestText() string {
	if a.Description != "" {
		return a.Description
	}
	if a.Content != "" {
		return a.Content
	}
	return a.Snippet
}

// CategoryText is the text the keyword filter matches against.
func (a Article) CategoryText() string {
	return a.Title + " " + a.Description + " " + a.Content + " " + a.Snippet
}

// DateOnly truncates t to a calendar date in UTC. All pipeline date
// comparisons happen at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
