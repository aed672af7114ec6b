package sources

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

// bbcFeeds maps internal categories onto the BBC section feeds. Unknown
// categories get the front-page feed.
var bbcFeeds = map[string]string{
	"news":     "https://feeds.bbci.co.uk/news/rss.xml",
	"general":  "https://feeds.bbci.co.uk/news/rss.xml",
	"sports":   "https://feeds.bbci.co.uk/sport/rss.xml",
	"tech":     "https://feeds.bbci.co.uk/news/technology/rss.xml",
	"business": "https://feeds.bbci.co.uk/news/business/rss.xml",
	"finance":  "https://feeds.bbci.co.uk/news/business/rss.xml",
	"movies":   "https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml",
}

// BBC reads the live headline feeds. The feeds only carry current items, so
// this adapter is skipped for purely historical windows.
type BBC struct {
	Feeds    map[string]string
	parser   *gofeed.Parser
	sanitize *bluemonday.Policy
}

func NewBBC(feedOverrides map[string]string) *BBC {
	feeds := make(map[string]string, len(bbcFeeds))
	for k, v := range bbcFeeds {
		feeds[k] = v
	}
	for k, v := range feedOverrides {
		feeds[k] = v
	}
	return &BBC{
		Feeds:    feeds,
		parser:   gofeed.NewParser(),
		sanitize: bluemonday.StrictPolicy(),
	}
}

func (b *BBC) Name() news.Source { return news.SourceBBC }

// LatestOnly marks this adapter as headline-feed only: the orchestrator skips
// it when the requested window does not include the current date.
func (b *BBC) LatestOnly() bool { return true }

func (b *BBC) Fetch(ctx context.Context, category string, win news.Window) []news.Article {
	feedURL, ok := b.Feeds[category]
	if !ok {
		feedURL = b.Feeds["news"]
	}
	if feedURL == "" {
		return nil
	}

	feed, err := b.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		logger.Warn("bbc feed fetch failed", "feed", feedURL, "error", err)
		return nil
	}

	articles := make([]news.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		desc := strings.TrimSpace(b.sanitize.Sanitize(item.Description))
		articles = append(articles, news.Article{
			Title:       item.Title,
			Description: desc,
			URL:         item.Link,
			PublishedAt: item.Published,
			Source:      news.SourceBBC,
		})
	}
	logger.Debug("bbc fetch done", "category", category, "articles", len(articles))
	return articles
}
