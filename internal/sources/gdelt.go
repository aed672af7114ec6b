package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

const gdeltEndpoint = "https://api.gdeltproject.org/api/v2/doc/doc"

// gdeltSeenDateLayout is the timestamp format GDELT uses in ArtList results.
const gdeltSeenDateLayout = "20060102T150405Z"

// GDELT queries the DOC 2.0 archive API. It needs no credential, which makes
// it the one adapter that is always available.
type GDELT struct {
	MaxResults int
	BaseURL    string
	Client     *http.Client
}

func NewGDELT(maxResults int) *GDELT {
	return &GDELT{
		MaxResults: maxResults,
		BaseURL:    gdeltEndpoint,
		Client:     defaultClient(),
	}
}

func (g *GDELT) Name() news.Source { return news.SourceGDELT }

func (g *GDELT) Fetch(ctx context.Context, category string, win news.Window) []news.Article {
	query := fmt.Sprintf("%q sourcelang:english", category+" news")
	if category == "news" || category == "general" {
		query = `"breaking news" sourcelang:english`
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("mode", "ArtList")
	params.Set("format", "json")
	params.Set("maxrecords", strconv.Itoa(g.MaxResults))
	params.Set("startdatetime", win.Start.Format("20060102")+"000000")
	params.Set("enddatetime", win.End.Format("20060102")+"235959")

	var out struct {
		Articles []struct {
			Title    string `json:"title"`
			URL      string `json:"url"`
			SeenDate string `json:"seendate"`
		} `json:"articles"`
	}
	if err := getJSON(ctx, g.Client, g.BaseURL+"?"+params.Encode(), &out); err != nil {
		logger.Warn("gdelt fetch failed", "category", category, "error", err)
		return nil
	}

	articles := make([]news.Article, 0, len(out.Articles))
	for _, r := range out.Articles {
		// GDELT has its own compact timestamp; convert it to ISO here so the
		// provider shape does not leak past the adapter.
		published := ""
		if t, err := time.Parse(gdeltSeenDateLayout, r.SeenDate); err == nil {
			published = t.UTC().Format(time.RFC3339)
		}
		articles = append(articles, news.Article{
			Title:       r.Title,
			URL:         r.URL,
			PublishedAt: published,
			Source:      news.SourceGDELT,
		})
	}
	logger.Debug("gdelt fetch done", "category", category, "articles", len(articles))
	return articles
}
