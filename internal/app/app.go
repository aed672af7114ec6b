// Package app assembles the pipeline from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/deusflow/newsflow/internal/config"
	"github.com/deusflow/newsflow/internal/gemini"
	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/metrics"
	"github.com/deusflow/newsflow/internal/pipeline"
	"github.com/deusflow/newsflow/internal/report"
	"github.com/deusflow/newsflow/internal/scraper"
	"github.com/deusflow/newsflow/internal/sources"
	"github.com/deusflow/newsflow/internal/storage"
	"github.com/deusflow/newsflow/internal/summarize"
)

// Runtime bundles the assembled pipeline with the resources that need
// closing when the process exits.
type Runtime struct {
	Pipeline *pipeline.Pipeline
	Writer   report.Writer
	Store    *storage.Store
	Config   *config.Config

	llm *gemini.Client
}

// Build wires every configured component together. Adapters whose credential
// is missing (or that are on the disable list) are simply left out; the order
// they are declared in here fixes first-seen-wins dedup.
func Build(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	srcCfg, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		return nil, fmt.Errorf("load source config: %w", err)
	}

	var srcs []sources.Source
	if cfg.TavilyAPIKey != "" && !srcCfg.SourceDisabled("tavily") {
		srcs = append(srcs, sources.NewTavily(cfg.TavilyAPIKey, cfg.MaxResults))
	} else {
		logger.Info("tavily adapter disabled", "reason", "no credential or disabled")
	}
	if !srcCfg.SourceDisabled("bbc") {
		srcs = append(srcs, sources.NewBBC(srcCfg.BBCFeeds))
	}
	if cfg.GuardianAPIKey != "" && !srcCfg.SourceDisabled("guardian") {
		srcs = append(srcs, sources.NewGuardian(cfg.GuardianAPIKey, cfg.MaxResults))
	} else {
		logger.Info("guardian adapter disabled", "reason", "no credential or disabled")
	}
	if !srcCfg.SourceDisabled("gdelt") {
		srcs = append(srcs, sources.NewGDELT(cfg.MaxResults))
	}

	var lastResort sources.Source
	if cfg.NewsDataAPIKey != "" && !srcCfg.SourceDisabled("newsdata") {
		lastResort = sources.NewNewsData(cfg.NewsDataAPIKey)
	}

	summarizer := &summarize.Summarizer{}
	var llm *gemini.Client
	if cfg.GeminiAPIKey != "" {
		llm, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			// Without the model every run takes the deterministic
			// fallback path, which is still a working pipeline.
			logger.Warn("gemini client unavailable, using fallback summaries", "error", err)
		} else {
			summarizer.Model = llm
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, using fallback summaries")
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}

	writer := report.Writer{Dir: cfg.OutputDir}

	p := &pipeline.Pipeline{
		Sources:      srcs,
		LastResort:   lastResort,
		Summarizer:   summarizer,
		Writer:       writer,
		Store:        store,
		Metrics:      metrics.Global,
		FetchTimeout: cfg.FetchTimeout,
	}
	if cfg.EnrichContent {
		p.Enricher = scraper.New(cfg.ScrapeMaxArticles)
	}

	return &Runtime{Pipeline: p, Writer: writer, Store: store, Config: cfg, llm: llm}, nil
}

// Close releases the runtime's resources.
func (rt *Runtime) Close() {
	if rt.llm != nil {
		rt.llm.Close()
	}
	if rt.Store != nil {
		rt.Store.Close()
	}
}
