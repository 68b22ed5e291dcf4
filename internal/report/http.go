package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/flixdash/internal/domain/pages"
	"github.com/okian/flixdash/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// GetJSON performs a GET request and decodes a 200 response into v.
func (c *HTTPClient) GetJSON(ctx context.Context, target string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d: %s", target, resp.StatusCode, body)
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(body, v)
}

// checkServiceHealth verifies the dashboard is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	client := newHTTPClient(cfg.Timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := client.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// pageURL returns the API path of a page. The dataset window is capped at
// limit rows.
func pageURL(base, name string, limit int) string {
	u := base + "/api/pages/" + pages.Slug(name)
	if name == pages.NameDataset {
		u += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	return u
}

// fetchPages downloads the named pages concurrently using a worker pool.
func fetchPages(ctx context.Context, cfg *Config, names []string, stats *Stats) (*Bundle, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	client := newHTTPClient(cfg.Timeout)

	var (
		bundle   Bundle
		mu       sync.Mutex
		firstErr error
		fetched  int64
		failed   int64
		wg       sync.WaitGroup
	)
	jobs := make(chan string, len(names))

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				start := time.Now()
				err := fetchPage(ctx, client, cfg.BaseURL, name, limit, &bundle, &mu)

				if err != nil {
					atomic.AddInt64(&failed, 1)
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				atomic.AddInt64(&fetched, 1)
				if cfg.Verbose {
					logger.Get().Info(ctx, "page fetched",
						logger.String("page", name),
						logger.Duration("latency", time.Since(start)))
				}
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	stats.PagesFetched = int(atomic.LoadInt64(&fetched))
	stats.PagesFailed = int(atomic.LoadInt64(&failed))
	if firstErr != nil {
		return nil, firstErr
	}
	return &bundle, nil
}

func fetchPage(ctx context.Context, client *HTTPClient, base, name string, limit int, b *Bundle, mu *sync.Mutex) error {
	target := pageURL(base, name, limit)
	switch name {
	case pages.NameDataset:
		var p Dataset
		if err := client.GetJSON(ctx, target, &p); err != nil {
			return err
		}
		mu.Lock()
		b.Dataset = &p
		mu.Unlock()
	case pages.NameEDA:
		var p pages.EDAPage
		if err := client.GetJSON(ctx, target, &p); err != nil {
			return err
		}
		mu.Lock()
		b.EDA = &p
		mu.Unlock()
	case pages.NameVisualization:
		var p pages.VisualizationPage
		if err := client.GetJSON(ctx, target, &p); err != nil {
			return err
		}
		mu.Lock()
		b.Visualization = &p
		mu.Unlock()
	case pages.NameRecency:
		var p pages.RecencyPage
		if err := client.GetJSON(ctx, target, &p); err != nil {
			return err
		}
		mu.Lock()
		b.Recency = &p
		mu.Unlock()
	}
	return nil
}
