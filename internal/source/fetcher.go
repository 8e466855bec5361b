package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"inkwell/internal/logging"
	"inkwell/internal/services"
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultUserAgent    = "inkwell/1.0"
)

// Fetcher retrieves raw HTML pages over HTTP. Transient upstream failures
// are retried with backoff before the fetch is reported as failed.
type Fetcher struct {
	client    *http.Client
	userAgent string
	attempts  uint
	logger    *slog.Logger
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchClient overrides the default HTTP client.
func WithFetchClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with each request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		ua = strings.TrimSpace(ua)
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithFetchAttempts bounds retries for transient upstream failures.
func WithFetchAttempts(attempts uint) FetcherOption {
	return func(f *Fetcher) {
		if attempts > 0 {
			f.attempts = attempts
		}
	}
}

// NewFetcher constructs a Fetcher.
func NewFetcher(logger *slog.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultFetchTimeout},
		userAgent: defaultUserAgent,
		attempts:  3,
		logger:    logging.NewComponentLogger(logger, "source"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML body of the given URL. A 404 maps to the
// source-not-found marker; 429 and 5xx statuses are retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := retry.DoWithData(
		func() (string, error) {
			return f.fetchOnce(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, services.ErrTransient)
		}),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("retrying fetch",
				logging.String("url", url),
				logging.Int("attempt", int(n)+1),
				logging.Error(err))
		}),
	)
	if err != nil {
		return "", err
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "fetch", "build request for "+url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "fetching", "fetch", "request timed out", err)
		}
		return "", services.Wrap(services.ErrTransient, "fetching", "fetch", "request failed for "+url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "fetch",
			fmt.Sprintf("http 404 for %s", url), nil)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return "", services.Wrap(services.ErrTransient, "fetching", "fetch",
			fmt.Sprintf("http %d for %s", resp.StatusCode, url), nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "fetch",
			fmt.Sprintf("http %d for %s", resp.StatusCode, url), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "fetching", "fetch", "read response body", err)
	}
	return string(body), nil
}
