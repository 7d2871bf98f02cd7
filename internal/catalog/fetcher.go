package catalog

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/etchant/internal/util"
)

// Fetcher performs GET requests against the catalog backend
type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	maxBytes    int64
	maxAttempts int
}

// NewFetcher creates a Fetcher. Empty proxy settings fall back to the environment.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(httpProxy, httpsProxy, noProxy)
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in for self-hosted backends
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   userAgent,
		maxBytes:    maxBytes,
		maxAttempts: 3,
	}
}

// SetMaxAttempts overrides the retry budget of FetchWithRetry
func (f *Fetcher) SetMaxAttempts(n int) {
	if n > 0 {
		f.maxAttempts = n
	}
}

// FetchResult is a successful response body and its metadata
type FetchResult struct {
	Body        []byte
	StatusCode  int
	ContentType string
	FinalURL    string
}

// Fetch performs a single GET request with the given extra headers
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, headers map[string]string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// fetchSleepFunc is swapped out in tests
var fetchSleepFunc = time.Sleep

// FetchWithRetry retries transient failures with exponential backoff (1s, 2s, 4s...)
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string, headers map[string]string) (*FetchResult, error) {
	var lastErr error
	backoff := time.Second

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL, headers)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || attempt == f.maxAttempts {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		fetchSleepFunc(backoff)
		backoff *= 2
	}

	return nil, lastErr
}

// isRetryableFetchError reports whether err is a 5xx, a 429, or a connection failure
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	if strings.HasPrefix(msg, "fetch:") {
		return true
	}
	if strings.HasPrefix(msg, "unexpected status: 429") {
		return true
	}
	return strings.HasPrefix(msg, "unexpected status: 5")
}
