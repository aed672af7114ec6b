package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

const newsDataEndpoint = "https://newsdata.io/api/1/latest"

// NewsData is the last-resort keyword search: the orchestrator only calls it
// when every other adapter came back empty.
type NewsData struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewNewsData(apiKey string) *NewsData {
	return &NewsData{
		APIKey:  apiKey,
		BaseURL: newsDataEndpoint,
		Client:  defaultClient(),
	}
}

func (n *NewsData) Name() news.Source { return news.SourceNewsData }

func (n *NewsData) Fetch(ctx context.Context, category string, win news.Window) []news.Article {
	params := url.Values{}
	params.Set("apikey", n.APIKey)
	params.Set("q", fmt.Sprintf("latest %s news", category))
	params.Set("language", "en")

	var out struct {
		Results []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Description string `json:"description"`
			PubDate     string `json:"pubDate"`
		} `json:"results"`
	}
	if err := getJSON(ctx, n.Client, n.BaseURL+"?"+params.Encode(), &out); err != nil {
		logger.Warn("newsdata fetch failed", "category", category, "error", err)
		return nil
	}

	articles := make([]news.Article, 0, len(out.Results))
	for _, r := range out.Results {
		articles = append(articles, news.Article{
			Title:       r.Title,
			Description: r.Description,
			URL:         r.Link,
			PublishedAt: r.PubDate,
			Source:      news.SourceNewsData,
		})
	}
	logger.Debug("newsdata fetch done", "category", category, "articles", len(articles))
	return articles
}
