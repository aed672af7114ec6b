package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

const guardianEndpoint = "https://content.guardianapis.com/search"

// guardianSections maps internal categories to Guardian content sections.
// news and general query across all sections.
var guardianSections = map[string]string{
	"sports":   "sport",
	"movies":   "film",
	"tech":     "technology",
	"business": "business",
	"finance":  "business",
}

// Guardian queries the Guardian content API with an explicit date range.
type Guardian struct {
	APIKey     string
	MaxResults int
	BaseURL    string
	Client     *http.Client
}

func NewGuardian(apiKey string, maxResults int) *Guardian {
	return &Guardian{
		APIKey:     apiKey,
		MaxResults: maxResults,
		BaseURL:    guardianEndpoint,
		Client:     defaultClient(),
	}
}

func (g *Guardian) Name() news.Source { return news.SourceGuardian }

func (g *Guardian) Fetch(ctx context.Context, category string, win news.Window) []news.Article {
	params := url.Values{}
	params.Set("api-key", g.APIKey)
	params.Set("from-date", win.Start.Format("2006-01-02"))
	params.Set("to-date", win.End.Format("2006-01-02"))
	params.Set("show-fields", "trailText")
	params.Set("page-size", strconv.Itoa(g.MaxResults))
	params.Set("order-by", "newest")
	if section, ok := guardianSections[category]; ok {
		params.Set("section", section)
	}

	var out struct {
		Response struct {
			Results []struct {
				WebTitle           string `json:"webTitle"`
				WebURL             string `json:"webUrl"`
				WebPublicationDate string `json:"webPublicationDate"`
				Fields             struct {
					TrailText string `json:"trailText"`
				} `json:"fields"`
			} `json:"results"`
		} `json:"response"`
	}
	if err := getJSON(ctx, g.Client, g.BaseURL+"?"+params.Encode(), &out); err != nil {
		logger.Warn("guardian fetch failed", "category", category, "error", err)
		return nil
	}

	articles := make([]news.Article, 0, len(out.Response.Results))
	for _, r := range out.Response.Results {
		articles = append(articles, news.Article{
			Title:       r.WebTitle,
			Description: r.Fields.TrailText,
			URL:         r.WebURL,
			PublishedAt: r.WebPublicationDate,
			Source:      news.SourceGuardian,
		})
	}
	logger.Debug("guardian fetch done", "category", category, "articles", len(articles))
	return articles
}
