package news

import (
	"testing"
	"time"
)

func TestParseRequestJSONPayload(t *testing.T) {
	req := ParseRequest(`{"timeframe": "weekly", "selected_date": "2026-08-20", "category": "tech"}`, testToday)
	if req.Timeframe != TimeframeWeekly {
		t.Errorf("timeframe = %s", req.Timeframe)
	}
	if req.Category != "tech" {
		t.Errorf("category = %q", req.Category)
	}
	if req.Anchor.Format("2006-01-02") != "2026-08-20" {
		t.Errorf("anchor = %s", req.Anchor.Format("2006-01-02"))
	}
}

func TestParseRequestLegacyShorthand(t *testing.T) {
	cases := []struct {
		in   string
		want Timeframe
	}{
		{"today", TimeframeDaily},
		{"daily", TimeframeDaily},
		{"weekly", TimeframeWeekly},
		{"week", TimeframeWeekly},
		{"monthly", TimeframeMonthly},
		{"month", TimeframeMonthly},
		{"whatever", TimeframeDaily},
	}
	for _, c := range cases {
		req := ParseRequest(c.in, testToday)
		if req.Timeframe != c.want {
			t.Errorf("ParseRequest(%q).Timeframe = %s, want %s", c.in, req.Timeframe, c.want)
		}
		if !req.Anchor.Equal(testToday) {
			t.Errorf("ParseRequest(%q).Anchor = %s, want today", c.in, req.Anchor)
		}
	}
}

func TestParseRequestClampsFutureAnchor(t *testing.T) {
	future := testToday.AddDate(0, 0, 3).Format("2006-01-02")
	req := ParseRequest(`{"timeframe": "daily", "selected_date": "`+future+`"}`, testToday)
	if !req.Anchor.Equal(testToday) {
		t.Errorf("future anchor not clamped: %s", req.Anchor.Format("2006-01-02"))
	}
}

func TestParseRequestBadDateDefaultsToToday(t *testing.T) {
	req := ParseRequest(`{"timeframe": "daily", "selected_date": "not-a-date"}`, testToday)
	if !req.Anchor.Equal(testToday) {
		t.Errorf("bad date should default to today, got %s", req.Anchor)
	}
}

func TestWindow(t *testing.T) {
	req := Request{Timeframe: TimeframeWeekly, Anchor: testToday}
	win := req.Window()
	if !win.End.Equal(testToday) {
		t.Errorf("window end = %s", win.End)
	}
	if got := win.Days(); got != 7 {
		t.Errorf("window days = %d, want 7", got)
	}
	if !win.Start.Equal(testToday.AddDate(0, 0, -6)) {
		t.Errorf("window start = %s", win.Start)
	}
	if !win.IncludesToday(testToday) {
		t.Errorf("window anchored at today should include today")
	}

	past := Request{Timeframe: TimeframeDaily, Anchor: testToday.AddDate(0, 0, -5)}
	if past.Window().IncludesToday(testToday) {
		t.Errorf("historical window should not include today")
	}
}

func TestTimeframeArtifactNaming(t *testing.T) {
	cases := []struct {
		tf       Timeframe
		file     string
		heading  string
		lookback int
	}{
		{TimeframeDaily, "daily_summary.md", "Today News Summary", 1},
		{TimeframeWeekly, "weekly_summary.md", "Weekly News Summary", 7},
		{TimeframeMonthly, "monthly_summary.md", "Monthly News Summary", 30},
	}
	for _, c := range cases {
		if c.tf.FileName() != c.file {
			t.Errorf("%s file = %s", c.tf, c.tf.FileName())
		}
		if c.tf.Heading() != c.heading {
			t.Errorf("%s heading = %s", c.tf, c.tf.Heading())
		}
		if c.tf.Days() != c.lookback {
			t.Errorf("%s days = %d", c.tf, c.tf.Days())
		}
	}
}

func TestParseTimeframeStrict(t *testing.T) {
	if _, err := ParseTimeframe("daily"); err != nil {
		t.Errorf("daily should parse: %v", err)
	}
	if _, err := ParseTimeframe("hourly"); err == nil {
		t.Errorf("hourly should not parse")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("DateOnly left time component: %s", got)
	}
}
