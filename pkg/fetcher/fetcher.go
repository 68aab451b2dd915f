// Package fetcher provides the default HTTP transport used by the crawler.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"domainsift/pkg/crawler"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0",
}

const defaultMaxBodySize = 10 * 1024 * 1024 // 10MB

// HTTP fetches pages over plain HTTP(S) with pooled connections and a hard
// request timeout. It satisfies crawler.Fetcher.
type HTTP struct {
	client      *http.Client
	maxBodySize int64
}

// Option configures an HTTP fetcher.
type Option func(*HTTP)

// WithClient replaces the underlying http.Client.
func WithClient(client *http.Client) Option {
	return func(h *HTTP) {
		h.client = client
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(h *HTTP) {
		h.maxBodySize = n
	}
}

// NewHTTP creates a fetcher with the given per-request timeout.
func NewHTTP(timeout time.Duration, opts ...Option) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     30 * time.Second,
	}
	h := &HTTP{
		client:      &http.Client{Transport: transport, Timeout: timeout},
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch retrieves pageURL and returns its body along with the final URL after
// redirects. Non-2xx responses and non-HTML content types are errors: the
// crawl loop skips such pages but never aborts on them.
func (h *HTTP) Fetch(ctx context.Context, pageURL string) (*crawler.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isWebpageMIME(ct) {
		return nil, fmt.Errorf("fetch %s: non-webpage content type %q", pageURL, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", pageURL, err)
	}

	return &crawler.FetchResult{
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		Body:       body,
	}, nil
}

func isWebpageMIME(contentType string) bool {
	mimeType := strings.TrimSpace(strings.Split(strings.ToLower(contentType), ";")[0])
	switch mimeType {
	case "text/html", "application/xhtml+xml", "application/xhtml", "text/xml", "application/xml":
		return true
	}
	return false
}
