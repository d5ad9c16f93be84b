package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// fetcher performs rate-limited GETs for one search backend.
type fetcher struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a backend.
type Option func(*fetcher)

// WithBaseURL overrides the backend host.
func WithBaseURL(u string) Option {
	return func(f *fetcher) { f.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *fetcher) { f.httpClient = c }
}

// WithRateLimit sets requests per second. Zero disables limiting.
func WithRateLimit(rps int) Option {
	return func(f *fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
}

func newFetcher(baseURL string, opts ...Option) fetcher {
	f := fetcher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// get returns the response body of a 200 reply. The caller closes it.
func (f *fetcher) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
