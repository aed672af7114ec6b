package summarize

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/news"
)

// Model is the single LLM call the summarizer depends on: one system
// instruction, one user message, free-form text back.
type Model interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Summary is one summarized article.
type Summary struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Body  string `json:"summary"`
	URL   string `json:"url"`
}

// Section groups the summaries of one calendar date.
type Section struct {
	Date  string    `json:"date"`
	Items []Summary `json:"articles"`
}

// Document is the grouped output of a run: sections ordered newest-first,
// items within a section in the order their summaries were produced.
type Document struct {
	Sections []Section `json:"sections"`
}

// Empty reports whether the document holds no summaries at all.
func (d Document) Empty() bool {
	return len(d.Sections) == 0
}

const maxFallbackWords = 150

const noTextPlaceholder = "Source did not provide article text. Open the full story to read more."

const systemPrompt = `You are a STRICT news summarisation engine.

You MUST:
- Only use information that appears in the provided articles.
- Never invent events, numbers, quotes, people or dates.
- Never create imaginary news or modify the tone.
- Skip index pages, category pages, or pages without real article text.

For each valid article, output ONE line exactly in this format:

DATE || HEADLINE || SUMMARY || URL

Rules:
- DATE: ISO format YYYY-MM-DD (use the DATE field provided).
- HEADLINE: 6-14 words, no newlines.
- SUMMARY: 60-150 words, 2-4 sentences, plain English.
- URL: the original article URL.
- If the article should be ignored (listing / duplicate / junk), output nothing.
- Do NOT add bullet points, explanations, or any extra text.`

// Summarizer turns normalized articles into a grouped Document. The
// structured LLM path runs first; whenever it yields nothing (LLM failure,
// empty input, model ignoring the format) the deterministic fallback takes
// over, so summarization itself never fails a run.
type Summarizer struct {
	Model Model // nil disables the structured path entirely
}

// Summarize produces the document for one run. The second return value is
// true when the deterministic fallback produced it.
func (s *Summarizer) Summarize(ctx context.Context, articles []news.Article, today time.Time) (Document, bool) {
	if len(articles) == 0 {
		return Document{}, false
	}

	summaries := s.structured(ctx, articles)
	fellBack := false
	if len(summaries) == 0 {
		summaries = Fallback(articles, today)
		fellBack = true
	}
	return groupByDate(summaries, today), fellBack
}

// BuildBlock renders the compact article block handed to the model, one
// ID/DATE/TITLE/TEXT/URL stanza per article. Articles missing a title or url
// are skipped.
func BuildBlock(articles []news.Article) string {
	blocks := make([]string, 0, len(articles))
	for i, a := range articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf(
			"ID: %d\nDATE: %s\nTITLE: %s\nTEXT: %s\nURL: %s",
			i+1, a.Date.Format("2006-01-02"), a.Title, a.BestText(), a.URL,
		))
	}
	return strings.Join(blocks, "\n\n")
}

func (s *Summarizer) structured(ctx context.Context, articles []news.Article) []Summary {
	if s.Model == nil {
		return nil
	}
	block := BuildBlock(articles)
	if block == "" {
		return nil
	}

	raw, err := s.Model.Generate(ctx, systemPrompt, "Here are the articles:\n\n"+block)
	if err != nil {
		// Auth, rate-limit and transport errors all land here. They mean
		// "zero structured results", never a pipeline failure.
		logger.Warn("llm summarizer failed, will fall back", "error", err)
		return nil
	}
	return parseStructured(raw)
}

// parseStructured reads the strict one-line-per-article response. The model
// output is never trusted: malformed lines are skipped, duplicate URLs
// dropped, first occurrence wins.
func parseStructured(raw string) []Summary {
	var summaries []Summary
	seen := make(map[string]struct{})

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "||") {
			continue
		}

		parts := strings.Split(line, "||")
		if len(parts) < 4 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		u := parts[3]
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}

		summaries = append(summaries, Summary{
			Date:  parts[0],
			Title: parts[1],
			Body:  parts[2],
			URL:   u,
		})
	}
	return summaries
}

// Fallback synthesizes summaries deterministically from whatever text the
// sources provided: first 150 words of the best text field, or a fixed
// placeholder when there is none. Articles are deduplicated by URL.
func Fallback(articles []news.Article, today time.Time) []Summary {
	var summaries []Summary
	seen := make(map[string]struct{})

	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}

		title := a.Title
		if title == "" {
			title = "News"
		}

		body := noTextPlaceholder
		if text := a.BestText(); text != "" {
			words := strings.Fields(text)
			if len(words) > maxFallbackWords {
				words = words[:maxFallbackWords]
			}
			body = strings.Join(words, " ")
		}

		date := a.Date
		if date.IsZero() {
			date = news.DateOnly(today)
		}

		summaries = append(summaries, Summary{
			Date:  date.Format("2006-01-02"),
			Title: title,
			Body:  body,
			URL:   a.URL,
		})
	}
	return summaries
}

// groupByDate flattens summaries into sections sorted newest-first. Within a
// date, order follows the order summaries were produced.
func groupByDate(summaries []Summary, today time.Time) Document {
	grouped := make(map[string][]Summary)
	for _, s := range summaries {
		d := s.Date
		if d == "" {
			d = news.DateOnly(today).Format("2006-01-02")
		}
		grouped[d] = append(grouped[d], s)
	}

	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	doc := Document{Sections: make([]Section, 0, len(dates))}
	for _, d := range dates {
		doc.Sections = append(doc.Sections, Section{Date: d, Items: grouped[d]})
	}
	return doc
}
