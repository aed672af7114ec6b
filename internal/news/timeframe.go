package news

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timeframe is the lookback granularity of a fetch.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Days returns the lookback window size.
func (tf Timeframe) Days() int {
	switch tf {
	case TimeframeWeekly:
		return 7
	case TimeframeMonthly:
		return 30
	default:
		return 1
	}
}

// Heading is the H1 line of the persisted artifact.
func (tf Timeframe) Heading() string {
	switch tf {
	case TimeframeWeekly:
		return "Weekly News Summary"
	case TimeframeMonthly:
		return "Monthly News Summary"
	default:
		return "Today News Summary"
	}
}

// FileName is the timeframe-keyed artifact name. Note it does not include the
// category: a later run for another category replaces the same file.
func (tf Timeframe) FileName() string {
	return string(tf) + "_summary.md"
}

// ParseTimeframe accepts only the three canonical values. Use
// normalizeTimeframe for the lenient request-payload forms.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(strings.ToLower(strings.TrimSpace(s))) {
	case TimeframeDaily:
		return TimeframeDaily, nil
	case TimeframeWeekly:
		return TimeframeWeekly, nil
	case TimeframeMonthly:
		return TimeframeMonthly, nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// normalizeTimeframe maps the legacy shorthands ("today", "week...",
// "month...") onto a canonical timeframe, defaulting to daily.
func normalizeTimeframe(s string) Timeframe {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "today" || s == "daily":
		return TimeframeDaily
	case strings.HasPrefix(s, "week"):
		return TimeframeWeekly
	case strings.HasPrefix(s, "month"):
		return TimeframeMonthly
	}
	return TimeframeDaily
}

// Window is the closed date range a fetch covers, at day granularity.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days is the window length in days.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// IncludesToday reports whether the window reaches the current date. Sources
// that only expose latest headlines are skipped for purely historical windows.
func (w Window) IncludesToday(today time.Time) bool {
	return !w.End.Before(today)
}

// Request is everything one pipeline run needs from the caller.
type Request struct {
	Category  string
	Timeframe Timeframe
	Anchor    time.Time // reference date the window is computed from
}

type requestPayload struct {
	Timeframe    string `json:"timeframe"`
	SelectedDate string `json:"selected_date"`
	Category     string `json:"category"`
}

// ParseRequest understands both the JSON invocation payload and the legacy
// bare-string shorthand. The anchor date defaults to today and is clamped so
// it never lies in the future.
func ParseRequest(raw string, today time.Time) Request {
	today = DateOnly(today)
	req := Request{Timeframe: TimeframeDaily, Anchor: today}

	raw = strings.TrimSpace(raw)
	var p requestPayload
	if err := json.Unmarshal([]byte(raw), &p); err == nil {
		req.Timeframe = normalizeTimeframe(p.Timeframe)
		req.Category = strings.ToLower(strings.TrimSpace(p.Category))
		if p.SelectedDate != "" {
			if d, err := time.Parse("2006-01-02", p.SelectedDate); err == nil {
				req.Anchor = DateOnly(d)
			}
		}
	} else {
		req.Timeframe = normalizeTimeframe(raw)
	}

	if req.Anchor.After(today) {
		req.Anchor = today
	}
	return req
}

// Window computes the lookback range anchored at the request date.
func (r Request) Window() Window {
	end := DateOnly(r.Anchor)
	return Window{Start: end.AddDate(0, 0, -(r.Timeframe.Days() - 1)), End: end}
}
