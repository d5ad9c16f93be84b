package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the HTTP timeout for data providers.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is requests per second per provider.
	DefaultRateLimit = 5

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// httpSource holds what every HTTP data provider shares.
type httpSource struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// Option configures a provider.
type Option func(*httpSource)

// WithBaseURL overrides the provider base URL.
func WithBaseURL(baseURL string) Option {
	return func(s *httpSource) {
		s.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *httpSource) {
		s.httpClient = c
	}
}

// WithRateLimit sets requests per second. Zero disables limiting.
func WithRateLimit(requestsPerSecond int) Option {
	return func(s *httpSource) {
		if requestsPerSecond <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *httpSource) {
		s.httpClient.Timeout = d
	}
}

func newHTTPSource(baseURL, proxyURL string, opts ...Option) httpSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	s := httpSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// getJSON performs a rate-limited GET and decodes the body into v.
func (s *httpSource) getJSON(ctx context.Context, endpoint string, v any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// StatusError is a non-200 provider response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d", e.Code)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
