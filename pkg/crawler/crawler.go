package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"domainsift/internal/models"
)

// ErrSeedUnreachable is returned by Crawl when the starting page itself
// cannot be fetched. Any other page failure is absorbed and the crawl
// continues.
var ErrSeedUnreachable = errors.New("seed page unreachable")

// Crawler walks a site breadth-first from a seed URL with a fixed pool of
// workers, feeding discovered internal links back into the Frontier and
// tallying the domains of external links.
type Crawler struct {
	seedURL    string
	seedDomain string
	policy     DomainPolicy
	maxPages   int
	workers    int
	delay      time.Duration

	fetcher   Fetcher
	extractor LinkExtractor
	logger    zerolog.Logger

	frontier    *Frontier
	tally       *Tally
	fetchErrors int32
}

// New validates the seed URL and prepares a crawler. An unparseable seed is a
// startup error: no workers are ever started for it.
func New(opts Options) (*Crawler, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("crawler: Fetcher is required")
	}
	if opts.Extractor == nil {
		return nil, errors.New("crawler: Extractor is required")
	}

	if opts.MaxPages <= 0 {
		opts.MaxPages = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.RequestDelay <= 0 {
		opts.RequestDelay = 100 * time.Millisecond
	}
	if opts.DomainPolicy == "" {
		opts.DomainPolicy = PolicyHost
	}
	if !opts.DomainPolicy.Valid() {
		return nil, fmt.Errorf("crawler: unknown domain policy %q", opts.DomainPolicy)
	}

	seed, err := Normalize(opts.StartURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	seedParsed, err := url.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Crawler{
		seedURL:    seed,
		seedDomain: SiteDomain(seedParsed, opts.DomainPolicy),
		policy:     opts.DomainPolicy,
		maxPages:   opts.MaxPages,
		workers:    opts.Workers,
		delay:      opts.RequestDelay,
		fetcher:    opts.Fetcher,
		extractor:  opts.Extractor,
		logger:     logger,
		frontier:   NewFrontier(opts.MaxPages),
		tally:      NewTally(),
	}, nil
}

// SeedDomain returns the comparison domain derived from the seed URL.
func (c *Crawler) SeedDomain() string {
	return c.seedDomain
}

// Crawl runs the crawl to completion and returns the final domain tally.
// Cancellation of ctx stops workers cooperatively at their next dequeue.
func (c *Crawler) Crawl(ctx context.Context) (*models.Result, error) {
	start := time.Now()
	c.logger.Info().
		Str("seed", c.seedURL).
		Str("domain", c.seedDomain).
		Int("workers", c.workers).
		Int("max_pages", c.maxPages).
		Msg("starting crawl")

	c.frontier.seed(c.seedURL)

	g, gctx := errgroup.WithContext(ctx)

	// Wake blocked workers when the context is canceled, including the
	// cancellation errgroup triggers on a seed failure.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-gctx.Done():
			c.frontier.Close()
		case <-watchDone:
		}
	}()

	for i := 0; i < c.workers; i++ {
		g.Go(func() error {
			return c.worker(gctx)
		})
	}

	err := g.Wait()
	close(watchDone)
	c.frontier.Close()
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &models.Result{
		Seed:         c.seedURL,
		Domain:       c.seedDomain,
		Domains:      c.tally.Snapshot(),
		PagesCrawled: c.frontier.PagesDequeued(),
		FetchErrors:  int(atomic.LoadInt32(&c.fetchErrors)),
		Elapsed:      time.Since(start),
	}
	c.logger.Info().
		Int("pages", result.PagesCrawled).
		Int("domains", len(result.Domains)).
		Int("fetch_errors", result.FetchErrors).
		Dur("elapsed", result.Elapsed).
		Msg("crawl complete")
	return result, nil
}

// worker pulls pages from the frontier until it shuts down. The per-worker
// limiter spaces fetches by the configured delay, so aggregate load on the
// target is roughly workers/delay requests per second.
func (c *Crawler) worker(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(c.delay), 1)

	for {
		pageURL, ok := c.frontier.Dequeue()
		if !ok {
			return nil
		}

		if err := limiter.Wait(ctx); err != nil {
			c.frontier.Done()
			return nil
		}

		err := c.processPage(ctx, pageURL)
		c.frontier.Done()

		if err != nil {
			atomic.AddInt32(&c.fetchErrors, 1)
			if pageURL == c.seedURL {
				return fmt.Errorf("%w: %v", ErrSeedUnreachable, err)
			}
			c.logger.Debug().Str("url", pageURL).Err(err).Msg("fetch failed, skipping page")
		}
	}
}

// processPage fetches one page and routes every extracted link: internal
// links go back to the frontier, external domains into the tally. Only the
// fetch itself can fail; malformed links are discarded silently.
func (c *Crawler) processPage(ctx context.Context, pageURL string) error {
	res, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	baseRaw := res.FinalURL
	if baseRaw == "" {
		baseRaw = pageURL
	}
	base, err := url.Parse(baseRaw)
	if err != nil {
		base, _ = url.Parse(pageURL)
	}

	links := c.extractor.ExtractLinks(res.Body, baseRaw)
	enqueued := 0
	for _, raw := range links {
		normalized, err := Normalize(raw, base)
		if err != nil {
			continue
		}
		internal, domain, err := Classify(normalized, c.seedDomain, c.policy)
		if err != nil || domain == "" {
			continue
		}
		if !internal {
			c.tally.Increment(domain)
			continue
		}
		if !isWebpageURL(normalized) {
			continue
		}
		if c.frontier.TryEnqueue(normalized) == Accepted {
			enqueued++
		}
	}

	c.logger.Debug().
		Str("url", pageURL).
		Int("status", res.StatusCode).
		Int("links", len(links)).
		Int("enqueued", enqueued).
		Msg("crawled page")
	return nil
}
