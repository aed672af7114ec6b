// Package pipeline wires the run together: fetch from every configured
// source, normalize, filter, dedup, summarize, persist.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/metrics"
	"github.com/deusflow/newsflow/internal/news"
	"github.com/deusflow/newsflow/internal/report"
	"github.com/deusflow/newsflow/internal/sources"
	"github.com/deusflow/newsflow/internal/storage"
	"github.com/deusflow/newsflow/internal/summarize"
)

// Enricher fills in body text for articles that arrived without any.
type Enricher interface {
	Enrich(ctx context.Context, articles []news.Article) []news.Article
}

// Result is what one run produced.
type Result struct {
	Category     string             `json:"category"`
	Timeframe    news.Timeframe     `json:"timeframe"`
	Fetched      int                `json:"fetched"`
	Kept         int                `json:"kept"`
	Summaries    int                `json:"summaries"`
	FallbackUsed bool               `json:"fallback_used"`
	Path         string             `json:"path"`
	Document     summarize.Document `json:"document"`
}

// Pipeline is the fetch-summarize-persist orchestrator. One Run call owns its
// data end to end; the only shared resource is the timeframe-keyed artifact
// the Writer replaces.
type Pipeline struct {
	Sources    []sources.Source // fixed declared order; makes first-seen-wins deterministic
	LastResort sources.Source   // optional keyword search tried when everything is empty
	Summarizer *summarize.Summarizer
	Enricher   Enricher // optional
	Writer     report.Writer
	Store      *storage.Store // optional run history
	Metrics    *metrics.Metrics

	FetchTimeout time.Duration // per-adapter budget
	Now          func() time.Time
}

func (p *Pipeline) stats() *metrics.Metrics {
	if p.Metrics != nil {
		return p.Metrics
	}
	return metrics.Global
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Run executes one fetch-summarize-persist cycle. Only a persistence failure
// is an error; everything upstream degrades instead.
func (p *Pipeline) Run(ctx context.Context, req news.Request) (*Result, error) {
	started := time.Now()
	today := news.DateOnly(p.now())

	if req.Category == "" {
		req.Category = "news"
	}
	if req.Anchor.IsZero() || req.Anchor.After(today) {
		req.Anchor = today
	}
	win := req.Window()

	logger.Info("pipeline run starting",
		"category", req.Category, "timeframe", req.Timeframe,
		"window_start", win.Start.Format("2006-01-02"), "window_end", win.End.Format("2006-01-02"))

	raw := p.fetchAll(ctx, req.Category, win, today)
	fetched := len(raw)
	kept := p.refine(raw, req.Category, today)

	// Last resort: one keyword search before we give up. An empty final set
	// is still a valid outcome, rendered as an explicit no-results document.
	if len(kept) == 0 && p.LastResort != nil {
		logger.Info("all sources empty, trying last-resort search", "category", req.Category)
		raw = p.fetchOne(ctx, p.LastResort, req.Category, win)
		fetched += len(raw)
		kept = p.refine(raw, req.Category, today)
	}
	p.stats().AddArticlesFetched(fetched)
	p.stats().AddArticlesKept(len(kept))

	if p.Enricher != nil {
		kept = p.Enricher.Enrich(ctx, kept)
	}

	doc, fellBack := p.Summarizer.Summarize(ctx, kept, today)
	if fellBack {
		p.stats().IncrementFallbackRuns()
	}
	count := 0
	for _, s := range doc.Sections {
		count += len(s.Items)
	}
	p.stats().AddSummariesProduced(count)

	path, err := p.Writer.Write(req.Timeframe, doc)
	if err != nil {
		p.stats().RecordFailure(err.Error())
		return nil, fmt.Errorf("persist summary: %w", err)
	}

	res := &Result{
		Category:     req.Category,
		Timeframe:    req.Timeframe,
		Fetched:      fetched,
		Kept:         len(kept),
		Summaries:    count,
		FallbackUsed: fellBack,
		Path:         path,
		Document:     doc,
	}

	if p.Store != nil {
		err := p.Store.RecordRun(storage.Run{
			Category:     res.Category,
			Timeframe:    string(res.Timeframe),
			AnchorDate:   req.Anchor.Format("2006-01-02"),
			Fetched:      res.Fetched,
			Kept:         res.Kept,
			Summaries:    res.Summaries,
			FallbackUsed: res.FallbackUsed,
			Path:         res.Path,
		})
		if err != nil {
			// History is best-effort; the artifact is already on disk.
			logger.Warn("failed to record run", "error", err)
		}
	}

	p.stats().RecordRun(time.Since(started))
	logger.Info("pipeline run finished",
		"category", res.Category, "timeframe", res.Timeframe,
		"fetched", res.Fetched, "kept", res.Kept, "summaries", res.Summaries,
		"fallback", res.FallbackUsed, "path", res.Path)
	return res, nil
}

// refine runs the shared normalize → filter → dedup tail over a raw batch.
func (p *Pipeline) refine(raw []news.Article, category string, today time.Time) []news.Article {
	kept := news.Normalize(raw, today)
	kept = news.FilterByCategory(kept, category)
	return news.Dedup(kept)
}

// fetchAll fans out to every source concurrently and concatenates the results
// in declared source order, so dedup sees a deterministic sequence no matter
// which adapter answered first.
func (p *Pipeline) fetchAll(ctx context.Context, category string, win news.Window, today time.Time) []news.Article {
	results := make([][]news.Article, len(p.Sources))

	var wg sync.WaitGroup
	for i, src := range p.Sources {
		if lo, ok := src.(sources.LatestOnly); ok && lo.LatestOnly() && !win.IncludesToday(today) {
			logger.Debug("skipping latest-only source for historical window", "source", src.Name())
			continue
		}
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			results[i] = p.fetchOne(ctx, src, category, win)
		}(i, src)
	}
	wg.Wait()

	var merged []news.Article
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	return merged
}

func (p *Pipeline) fetchOne(ctx context.Context, src sources.Source, category string, win news.Window) []news.Article {
	timeout := p.FetchTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return src.Fetch(fctx, category, win)
}
