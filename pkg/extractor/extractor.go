// Package extractor provides the default link-extraction collaborator,
// built on goquery so broken markup still yields whatever links can be
// parsed out of it.
package extractor

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls anchor hrefs out of HTML and resolves them against the
// page URL. It satisfies crawler.LinkExtractor.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the deduplicated absolute URLs linked from body.
// It never fails: unparseable documents or hrefs simply contribute nothing.
func (e *Extractor) ExtractLinks(body []byte, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	base, baseErr := url.Parse(baseURL)

	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		abs := href
		if baseErr == nil {
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			abs = base.ResolveReference(ref).String()
		}
		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	})
	return links
}
