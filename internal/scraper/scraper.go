// Package scraper fetches full article pages for items whose provider gave us
// a link but no text. Archive-style providers return bare URLs; without a
// body the fallback summarizer has nothing to trim.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

// maxContentRunes caps extracted text; full articles are summarized down to
// 150 words anyway.
const maxContentRunes = 4000

// genericSelectors is the goquery fallback walk when readability finds
// nothing usable.
var genericSelectors = []string{
	"article p",
	".article-body p",
	".post-content p",
	".entry-content p",
	"main p",
	"p",
}

// Extractor enriches articles with scraped body text, bounded per run.
type Extractor struct {
	Client      *http.Client
	MaxArticles int
	Pause       time.Duration // between requests, to stay polite
}

func New(maxArticles int) *Extractor {
	return &Extractor{
		Client:      &http.Client{Timeout: 15 * time.Second},
		MaxArticles: maxArticles,
		Pause:       500 * time.Millisecond,
	}
}

// Enrich fills Content for up to MaxArticles articles that have no text at
// all. Scrape failures leave the article as it was.
func (e *Extractor) Enrich(ctx context.Context, articles []news.Article) []news.Article {
	scraped := 0
	for i := range articles {
		if articles[i].BestText() != "" {
			continue
		}
		if scraped >= e.MaxArticles {
			break
		}
		if err := ctx.Err(); err != nil {
			break
		}

		content, err := e.extract(ctx, articles[i].URL)
		if err != nil {
			logger.Debug("scrape failed", "url", articles[i].URL, "error", err)
			continue
		}
		articles[i].Content = content
		scraped++

		if e.Pause > 0 {
			time.Sleep(e.Pause)
		}
	}
	if scraped > 0 {
		logger.Info("enriched articles with scraped content", "count", scraped)
	}
	return articles
}

func (e *Extractor) extract(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	resp, err := e.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	content := readabilityText(doc, link)
	if content == "" {
		content = selectorText(doc)
	}
	content = cleanContent(content)
	if content == "" {
		return "", fmt.Errorf("can't get content")
	}
	return content, nil
}

// readabilityText runs the readability extractor over the already-parsed
// document.
func readabilityText(doc *goquery.Document, link string) string {
	pageURL, err := url.Parse(link)
	if err != nil {
		return ""
	}
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}

// selectorText is the selector walk used when readability comes back empty.
func selectorText(doc *goquery.Document) string {
	var paragraphs []string
	for _, selector := range genericSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// cleanContent normalizes whitespace and caps the length on a word boundary.
func cleanContent(content string) string {
	words := strings.Fields(content)
	content = strings.Join(words, " ")

	runes := []rune(content)
	if len(runes) <= maxContentRunes {
		return content
	}
	trimmed := string(runes[:maxContentRunes])
	if idx := strings.LastIndex(trimmed, " "); idx > 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}
