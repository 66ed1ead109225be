package feed

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent when FetcherConfig.UserAgent is empty.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// FetcherConfig controls remote downloads.
type FetcherConfig struct {
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration
	// CacheTTL keeps downloaded documents in memory; zero disables caching.
	CacheTTL time.Duration
	// Retries is the number of extra attempts after a failed one.
	Retries int
	// RetryBackoff is the first retry delay; it doubles per attempt.
	RetryBackoff time.Duration
	// RatePerSecond limits requests across all sources; zero is unlimited.
	RatePerSecond float64
	UserAgent     string
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// DefaultFetcherConfig returns sensible defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:       30 * time.Second,
		CacheTTL:      15 * time.Minute,
		Retries:       2,
		RetryBackoff:  500 * time.Millisecond,
		RatePerSecond: 2,
		UserAgent:     DefaultUserAgent,
	}
}

// StatusError is returned for a non-200 HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s returned status %d", e.URL, e.Code)
}

// Temporary reports whether retrying may help.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// Fetcher downloads source documents. Remote documents are cached by URL
// for CacheTTL; local paths and file:// URLs are always read from disk.
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	cache   *cache.Cache
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewFetcher creates a fetcher. A nil logger discards log output.
func NewFetcher(config FetcherConfig, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	f := &Fetcher{
		config:  config,
		client:  config.Client,
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  logger,
	}

	if f.client == nil {
		f.client = &http.Client{Timeout: config.Timeout}
	}

	if config.CacheTTL > 0 {
		f.cache = cache.New(config.CacheTTL, 2*config.CacheTTL)
	}

	if config.RatePerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(config.RatePerSecond), 1)
	}

	return f
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch returns the document at source: an http(s) URL, a file:// URL or
// a local path.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !IsRemote(source) {
		path := strings.TrimPrefix(source, "file://")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		return data, nil
	}

	if f.cache != nil {
		if cached, ok := f.cache.Get(source); ok {
			f.logger.Debug("Cache hit", "url", source)
			return cached.([]byte), nil
		}
	}

	data, err := f.fetchWithRetry(ctx, source)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.SetDefault(source, data)
	}

	return data, nil
}

// Flush empties the download cache.
func (f *Fetcher) Flush() {
	if f.cache != nil {
		f.cache.Flush()
	}
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	backoff := f.config.RetryBackoff

	var lastErr error

	for attempt := 0; attempt <= f.config.Retries; attempt++ {
		if attempt > 0 {
			f.logger.Warn("Retrying download", "url", url, "attempt", attempt, "error", lastErr)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}

			backoff *= 2
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		data, err := f.get(ctx, url)
		if err == nil {
			f.logger.Info("Downloaded source", "url", url, "bytes", len(data), "attempts", attempt+1)
			return data, nil
		}

		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			break
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed to fetch %s: %w", url, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/csv,text/html,application/xhtml+xml,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return data, nil
}

// decodeBody undoes Content-Encoding. Setting Accept-Encoding by hand turns
// off the transport's transparent gzip handling.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}

		return r, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}
