package crawler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Fetcher retrieves a single page. Implementations own their connect and read
// timeouts; the crawl loop treats any returned error as a skip, never a
// crawl-abort (except for the seed page, which must be reachable).
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*FetchResult, error)
}

// FetchResult is the outcome of a successful fetch. FinalURL is the URL after
// redirects and is used as the base for resolving relative links.
type FetchResult struct {
	StatusCode int
	FinalURL   string
	Body       []byte
}

// LinkExtractor turns page content into absolute URL strings. Implementations
// must tolerate malformed markup and return best-effort partial results.
type LinkExtractor interface {
	ExtractLinks(body []byte, baseURL string) []string
}

// Options configures a Crawler. Fetcher and Extractor are required; the rest
// fall back to the documented defaults when zero.
type Options struct {
	StartURL     string
	MaxPages     int           // default 100
	Workers      int           // default 8
	RequestDelay time.Duration // per-worker gap between fetches, default 100ms
	DomainPolicy DomainPolicy  // default PolicyHost
	Fetcher      Fetcher
	Extractor    LinkExtractor
	Logger       *zerolog.Logger // nil disables logging
}
