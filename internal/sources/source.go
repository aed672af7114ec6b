package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/deusflow/newsflow/internal/news"
	"github.com/deusflow/newsflow/internal/retry"
)

// Source fetches raw, unnormalized articles for a category within a lookback
// window. Transport failures, malformed payloads and missing credentials never
// escape an adapter: it logs and returns an empty list so one provider cannot
// take down a run. Dedup and category filtering belong to later stages.
type Source interface {
	Name() news.Source
	Fetch(ctx context.Context, category string, win news.Window) []news.Article
}

// LatestOnly is implemented by adapters whose provider exposes only current
// headlines. The orchestrator invokes them only when the window includes the
// current date.
type LatestOnly interface {
	LatestOnly() bool
}

var transportRetry = retry.Config{MaxAttempts: 2, Delay: time.Second}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON fetches url and decodes the JSON body into out, with one retry on
// transport errors.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	return retry.WithRetry(ctx, transportRetry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// postJSON posts body as JSON to url and decodes the response into out.
func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return retry.WithRetry(ctx, transportRetry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}
