package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline counters for the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	ArticlesFetched    int64
	ArticlesKept       int64
	DuplicatesFiltered int64
	FutureDropped      int64
	SummariesProduced  int64
	FallbackRuns       int64
	RunsCompleted      int64
	RunsFailed         int64

	LastProcessingTime time.Duration

	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) AddArticlesKept(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesKept += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementFutureDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FutureDropped++
}

func (m *Metrics) AddSummariesProduced(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesProduced += int64(n)
}

func (m *Metrics) IncrementFallbackRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackRuns++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsCompleted++
	m.LastProcessingTime = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) RecordFailure(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsFailed++
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":        m.ArticlesFetched,
		"articles_kept":           m.ArticlesKept,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"future_dated_dropped":    m.FutureDropped,
		"summaries_produced":      m.SummariesProduced,
		"fallback_runs":           m.FallbackRuns,
		"runs_completed":          m.RunsCompleted,
		"runs_failed":             m.RunsFailed,
		"last_processing_time_ms": m.LastProcessingTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
