package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrMalformedURL marks links that cannot be parsed or carry a non-web scheme.
// Callers discard such links silently; they are never fatal.
var ErrMalformedURL = errors.New("malformed URL")

// DomainPolicy controls how hosts are compared when deciding whether a link is
// internal and which name is recorded for an external link.
type DomainPolicy string

const (
	// PolicyHost compares full hosts, so shop.example.com is external to
	// example.com. This is the default.
	PolicyHost DomainPolicy = "host"

	// PolicyApex collapses hosts to their registrable domain (eTLD+1), so
	// subdomains of the seed site count as internal.
	PolicyApex DomainPolicy = "apex"
)

// Valid reports whether p is a recognized policy.
func (p DomainPolicy) Valid() bool {
	return p == PolicyHost || p == PolicyApex
}

// Normalize resolves rawURL against base and canonicalizes it into the form
// used as the dedup key: lowercase scheme and host, fragment dropped, empty
// path mapped to "/", non-root trailing slash removed.
func Normalize(rawURL string, base *url.URL) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedURL, rawURL, err)
	}

	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: %q: unsupported scheme", ErrMalformedURL, rawURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrMalformedURL, rawURL)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	} else if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// SiteDomain extracts the comparison domain for a parsed URL under the given
// policy. Under PolicyApex, hosts the public suffix list cannot reduce fall
// back to the full host.
func SiteDomain(u *url.URL, policy DomainPolicy) string {
	host := strings.ToLower(u.Hostname())
	if policy == PolicyApex {
		if apex, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			return apex
		}
	}
	return host
}

// Classify decides whether a normalized URL is internal to the seed site.
// For external URLs it also returns the domain to record in the tally.
func Classify(normalized, seedDomain string, policy DomainPolicy) (internal bool, domain string, err error) {
	u, err := url.Parse(normalized)
	if err != nil {
		return false, "", fmt.Errorf("%w: %q: %v", ErrMalformedURL, normalized, err)
	}
	domain = SiteDomain(u, policy)
	return domain == seedDomain, domain, nil
}

var nonWebpageExts = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico",
	".pdf", ".zip", ".gz", ".tar",
	".mp3", ".mp4", ".avi", ".mov",
	".css", ".js", ".woff", ".woff2",
}

// isWebpageURL filters out links that point at binary or asset resources and
// therefore cannot yield further links.
func isWebpageURL(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range nonWebpageExts {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}
