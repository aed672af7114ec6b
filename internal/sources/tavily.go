package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// tavilyCategories maps internal categories to a Tavily topic and a query
// flavour. Unknown categories fall back to a generic breaking-news query.
var tavilyCategories = map[string]struct{ topic, suffix string }{
	"news":     {"news", "breaking news headlines from BBC, The Guardian, AP and Reuters"},
	"general":  {"news", "top general stories from BBC, The Guardian, AP and Reuters"},
	"finance":  {"finance", "finance and markets news from Reuters, Bloomberg, WSJ and FT"},
	"business": {"finance", "business and company news from FT, Bloomberg, WSJ and Reuters"},
	"sports":   {"news", "sports headlines, scores and match reports from ESPN and BBC Sport"},
	"movies":   {"news", "movies and entertainment news from Variety, Hollywood Reporter and IMDB news"},
	"tech":     {"news", "technology news about AI, software, gadgets and startups from The Verge, Wired and TechCrunch"},
}

// Tavily is the primary search-API adapter.
type Tavily struct {
	APIKey     string
	MaxResults int
	BaseURL    string
	Client     *http.Client
}

func NewTavily(apiKey string, maxResults int) *Tavily {
	return &Tavily{
		APIKey:     apiKey,
		MaxResults: maxResults,
		BaseURL:    tavilyEndpoint,
		Client:     defaultClient(),
	}
}

func (t *Tavily) Name() news.Source { return news.SourceTavily }

func (t *Tavily) Fetch(ctx context.Context, category string, win news.Window) []news.Article {
	cfg, ok := tavilyCategories[category]
	if !ok {
		cfg = struct{ topic, suffix string }{"news", "breaking news"}
	}

	timeRange := "day"
	switch {
	case win.Days() >= 30:
		timeRange = "month"
	case win.Days() >= 7:
		timeRange = "week"
	}

	body := map[string]any{
		"api_key":        t.APIKey,
		"query":          fmt.Sprintf("Latest %s news today - %s", category, cfg.suffix),
		"topic":          cfg.topic,
		"time_range":     timeRange,
		"days":           win.Days(),
		"max_results":    t.MaxResults,
		"include_answer": false,
	}

	var out struct {
		Results []struct {
			Title         string `json:"title"`
			URL           string `json:"url"`
			Content       string `json:"content"`
			PublishedDate string `json:"published_date"`
		} `json:"results"`
	}
	if err := postJSON(ctx, t.Client, t.BaseURL, body, &out); err != nil {
		logger.Warn("tavily fetch failed", "category", category, "error", err)
		return nil
	}

	articles := make([]news.Article, 0, len(out.Results))
	for _, r := range out.Results {
		articles = append(articles, news.Article{
			Title:       r.Title,
			Content:     r.Content,
			URL:         r.URL,
			PublishedAt: r.PublishedDate,
			Source:      news.SourceTavily,
		})
	}
	logger.Debug("tavily fetch done", "category", category, "articles", len(articles))
	return articles
}
