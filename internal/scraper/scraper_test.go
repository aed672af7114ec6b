package scraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/deusflow/newsflow/internal/news"
)

const articlePage = `<html><head><title>Story</title></head><body>
<article>
<p>The first paragraph carries the opening of the story in enough detail.</p>
<p>The second paragraph continues with more reporting on what happened.</p>
<p>The third paragraph closes out the piece with reactions and context.</p>
</article>
</body></html>`

func TestEnrichFillsMissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, articlePage)
	}))
	defer srv.Close()

	e := New(5)
	e.Client = srv.Client()
	e.Pause = 0

	articles := []news.Article{
		{Title: "Bare link", URL: srv.URL + "/story"},
		{Title: "Has text", URL: srv.URL + "/other", Description: "Already described."},
	}
	enriched := e.Enrich(context.Background(), articles)

	if enriched[0].Content == "" {
		t.Errorf("bare article not enriched")
	}
	if !strings.Contains(enriched[0].Content, "first paragraph") {
		t.Errorf("content = %q", enriched[0].Content)
	}
	if enriched[1].Content != "" {
		t.Errorf("article with text should not be scraped")
	}
}

func TestEnrichRespectsCap(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, articlePage)
	}))
	defer srv.Close()

	e := New(1)
	e.Client = srv.Client()
	e.Pause = 0

	articles := []news.Article{
		{Title: "One", URL: srv.URL + "/1"},
		{Title: "Two", URL: srv.URL + "/2"},
	}
	e.Enrich(context.Background(), articles)

	if hits != 1 {
		t.Errorf("scraped %d pages, cap is 1", hits)
	}
}

func TestEnrichLeavesArticleOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := New(5)
	e.Client = srv.Client()
	e.Pause = 0

	articles := e.Enrich(context.Background(), []news.Article{{Title: "Gone", URL: srv.URL + "/404"}})
	if articles[0].Content != "" {
		t.Errorf("failed scrape should leave the article untouched")
	}
}

func TestSelectorTextNeedsThreeParagraphs(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articlePage))
	if err != nil {
		t.Fatal(err)
	}
	text := selectorText(doc)
	if strings.Count(text, "\n\n") != 2 {
		t.Errorf("expected three paragraphs, got %q", text)
	}
}

func TestSelectorTextSkipsShortFragments(t *testing.T) {
	page := `<html><body><article><p>short</p><p>Long enough paragraph to pass the length gate.</p></article></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	text := selectorText(doc)
	if strings.Contains(text, "short") {
		t.Errorf("short fragment kept: %q", text)
	}
}

func TestCleanContent(t *testing.T) {
	got := cleanContent("  spaced \n\n out \t text  ")
	if got != "spaced out text" {
		t.Errorf("got %q", got)
	}

	long := strings.Repeat("word ", 2000)
	capped := cleanContent(long)
	if len([]rune(capped)) > maxContentRunes {
		t.Errorf("capped content is %d runes", len([]rune(capped)))
	}
	if strings.HasSuffix(capped, " ") || !strings.HasSuffix(capped, "word") {
		t.Errorf("cap should land on a word boundary: %q", capped[len(capped)-20:])
	}
}
