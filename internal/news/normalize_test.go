package news

import (
	"testing"
	"time"
)

var testToday = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://a.com/x?utm=1", "https://a.com/x"},
		{"HTTPS://A.com/x", "https://a.com/x"},
		{"https://a.com/x/", "https://a.com/x"},
		{"https://a.com/x#section", "https://a.com/x"},
		{"https://a.com/x?utm=1&ref=rss#top", "https://a.com/x"},
		{"  https://a.com/x  ", "https://a.com/x"},
		{"not a url at all", "not a url at all"},
		{"://broken", "://broken"},
	}
	for _, c := range cases {
		if got := NormalizeURL(c.in); got != c.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	urls := []string{
		"https://a.com/x?utm=1",
		"HTTP://B.org/path/",
		"https://c.net/a/b#frag",
		"garbage input",
	}
	for _, u := range urls {
		once := NormalizeURL(u)
		twice := NormalizeURL(once)
		if once != twice {
			t.Errorf("NormalizeURL not idempotent for %q: %q then %q", u, once, twice)
		}
	}
}

func TestResolveDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-08-28T10:30:00Z", "2026-08-28"},
		{"2026-08-28T10:30:00+02:00", "2026-08-28"},
		{"2026-08-28T10:30:00", "2026-08-28"},
		{"2026-08-28 10:30:00", "2026-08-28"},
		{"2026-08-28", "2026-08-28"},
		{"Fri, 28 Aug 2026 10:30:00 GMT", "2026-08-28"},
		{"Fri, 28 Aug 2026 10:30:00 +0200", "2026-08-28"},
		{"", "2026-08-30"},             // missing defaults to today
		{"next tuesday", "2026-08-30"}, // unparseable defaults to today
	}
	for _, c := range cases {
		got := ResolveDate(c.in, testToday)
		if got.Format("2006-01-02") != c.want {
			t.Errorf("ResolveDate(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestNormalizeDropsInvalidArticles(t *testing.T) {
	articles := []Article{
		{Title: "Kept", URL: "https://a.com/1", PublishedAt: "2026-08-29"},
		{Title: "", URL: "https://a.com/2"},
		{Title: "No URL", URL: ""},
	}
	got := Normalize(articles, testToday)
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving article, got %d", len(got))
	}
	if got[0].NormalizedURL != "https://a.com/1" {
		t.Errorf("normalized url = %q", got[0].NormalizedURL)
	}
	if got[0].Date.Format("2006-01-02") != "2026-08-29" {
		t.Errorf("date = %s", got[0].Date.Format("2006-01-02"))
	}
}

func TestNormalizeExcludesFutureDated(t *testing.T) {
	articles := []Article{
		{Title: "Tomorrow", URL: "https://a.com/future", PublishedAt: testToday.AddDate(0, 0, 1).Format(time.RFC3339)},
		{Title: "Today", URL: "https://a.com/now", PublishedAt: testToday.Format(time.RFC3339)},
	}
	got := Normalize(articles, testToday)
	if len(got) != 1 {
		t.Fatalf("expected only the non-future article, got %d", len(got))
	}
	if got[0].Title != "Today" {
		t.Errorf("wrong survivor: %q", got[0].Title)
	}
	for _, a := range got {
		if a.Date.After(testToday) {
			t.Errorf("article %q has a future date %s", a.Title, a.Date)
		}
	}
}
