package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deusflow/newsflow/internal/news"
)

var testToday = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

type fakeModel struct {
	response string
	err      error
}

func (f *fakeModel) Generate(ctx context.Context, system, user string) (string, error) {
	return f.response, f.err
}

func article(title, url, desc string) news.Article {
	return news.Article{
		Title:         title,
		Description:   desc,
		URL:           url,
		NormalizedURL: news.NormalizeURL(url),
		Date:          news.DateOnly(testToday.AddDate(0, 0, -1)),
	}
}

func TestStructuredPath(t *testing.T) {
	model := &fakeModel{response: strings.Join([]string{
		"2026-08-29 || City approves record transport budget || The council signed off on the largest transport budget in a decade, covering new bus lanes and station upgrades across the city over the next five years. || https://a.com/budget",
		"",
		"this line is junk and has no separator",
		"2026-08-28 || only three fields || https://a.com/short",
		"2026-08-29 || Duplicate of first URL || Another summary body. || https://a.com/budget",
	}, "\n")}

	s := &Summarizer{Model: model}
	doc, fellBack := s.Summarize(context.Background(), []news.Article{article("t", "https://a.com/budget", "d")}, testToday)

	if fellBack {
		t.Fatalf("structured path should not report fallback")
	}
	if len(doc.Sections) != 1 || len(doc.Sections[0].Items) != 1 {
		t.Fatalf("expected exactly one parsed summary, got %+v", doc)
	}
	got := doc.Sections[0].Items[0]
	if got.URL != "https://a.com/budget" {
		t.Errorf("url = %q", got.URL)
	}
	if got.Title != "City approves record transport budget" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestLLMErrorFallsBack(t *testing.T) {
	// Auth failure during the LLM call must degrade, never propagate.
	model := &fakeModel{err: errors.New("401 unauthorized")}
	desc := "A city council approved a new budget today."

	s := &Summarizer{Model: model}
	doc, fellBack := s.Summarize(context.Background(), []news.Article{article("Budget", "https://a.com/b", desc)}, testToday)

	if !fellBack {
		t.Fatalf("expected fallback after LLM error")
	}
	if len(doc.Sections) != 1 || len(doc.Sections[0].Items) != 1 {
		t.Fatalf("expected 1 fallback summary, got %+v", doc)
	}
	if got := doc.Sections[0].Items[0].Body; got != desc {
		t.Errorf("fallback body = %q, want the original description", got)
	}
}

func TestModelIgnoringFormatFallsBack(t *testing.T) {
	model := &fakeModel{response: "Sure! Here are the summaries you asked for:\n1. A story happened."}
	s := &Summarizer{Model: model}
	_, fellBack := s.Summarize(context.Background(), []news.Article{article("T", "https://a.com/1", "some text")}, testToday)
	if !fellBack {
		t.Errorf("off-format output should trigger fallback")
	}
}

func TestFallbackWordCap(t *testing.T) {
	long := strings.Repeat("word ", 400)
	got := Fallback([]news.Article{article("Long", "https://a.com/long", long)}, testToday)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary")
	}
	if n := len(strings.Fields(got[0].Body)); n > 150 {
		t.Errorf("fallback body has %d words, cap is 150", n)
	}
}

func TestFallbackPlaceholderWhenNoText(t *testing.T) {
	got := Fallback([]news.Article{article("Bare link", "https://a.com/bare", "")}, testToday)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary")
	}
	if got[0].Body != noTextPlaceholder {
		t.Errorf("body = %q, want placeholder", got[0].Body)
	}
}

func TestFallbackTextPreference(t *testing.T) {
	a := news.Article{
		Title:   "T",
		URL:     "https://a.com/1",
		Content: "content text",
		Snippet: "snippet text",
		Date:    news.DateOnly(testToday),
	}
	got := Fallback([]news.Article{a}, testToday)
	if got[0].Body != "content text" {
		t.Errorf("expected content before snippet, got %q", got[0].Body)
	}
}

func TestFallbackDeduplicatesByURL(t *testing.T) {
	a := article("One", "https://a.com/1", "text one")
	b := article("One again", "https://a.com/1", "text two")
	got := Fallback([]news.Article{a, b}, testToday)
	if len(got) != 1 {
		t.Errorf("expected URL dedup in fallback, got %d summaries", len(got))
	}
}

func TestGroupingNewestFirst(t *testing.T) {
	model := &fakeModel{response: strings.Join([]string{
		"2026-08-27 || Oldest headline for the grouped document || body one. || https://a.com/1",
		"2026-08-29 || Newest headline for the grouped document || body two. || https://a.com/2",
		"2026-08-28 || Middle headline for the grouped document || body three. || https://a.com/3",
		"2026-08-29 || Second story on the newest date || body four. || https://a.com/4",
	}, "\n")}

	s := &Summarizer{Model: model}
	doc, _ := s.Summarize(context.Background(), []news.Article{article("t", "https://a.com/1", "d")}, testToday)

	wantDates := []string{"2026-08-29", "2026-08-28", "2026-08-27"}
	if len(doc.Sections) != len(wantDates) {
		t.Fatalf("expected %d sections, got %d", len(wantDates), len(doc.Sections))
	}
	for i, want := range wantDates {
		if doc.Sections[i].Date != want {
			t.Errorf("section %d date = %s, want %s", i, doc.Sections[i].Date, want)
		}
	}
	// within a date, production order holds
	newest := doc.Sections[0].Items
	if len(newest) != 2 || newest[0].URL != "https://a.com/2" || newest[1].URL != "https://a.com/4" {
		t.Errorf("within-date order broken: %+v", newest)
	}
}

func TestEmptyInputProducesEmptyDocument(t *testing.T) {
	s := &Summarizer{}
	doc, fellBack := s.Summarize(context.Background(), nil, testToday)
	if !doc.Empty() {
		t.Errorf("expected empty document")
	}
	if fellBack {
		t.Errorf("empty input is not a fallback")
	}
}

func TestBuildBlockSkipsIncompleteArticles(t *testing.T) {
	articles := []news.Article{
		article("Good", "https://a.com/1", "text"),
		{Title: "", URL: "https://a.com/2"},
		{Title: "No URL", URL: ""},
	}
	block := BuildBlock(articles)
	if strings.Count(block, "URL: ") != 1 {
		t.Errorf("expected one stanza, got:\n%s", block)
	}
	if !strings.Contains(block, "TITLE: Good") {
		t.Errorf("missing stanza for valid article:\n%s", block)
	}
}
