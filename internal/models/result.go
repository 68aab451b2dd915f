package models

import (
	"sort"
	"time"
)

// Result is the immutable outcome of a crawl, handed to the output stage
// after all workers have exited.
type Result struct {
	Seed         string         `json:"seed"`
	Domain       string         `json:"domain"`
	Domains      map[string]int `json:"domains"`
	PagesCrawled int            `json:"pages_crawled"`
	FetchErrors  int            `json:"fetch_errors"`
	Elapsed      time.Duration  `json:"elapsed"`
}

// DomainCount pairs an external domain with its occurrence count.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// SortedCounts returns the domains ordered by descending count, ties broken
// lexicographically.
func (r *Result) SortedCounts() []DomainCount {
	out := make([]DomainCount, 0, len(r.Domains))
	for d, n := range r.Domains {
		out = append(out, DomainCount{Domain: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// SortedDomains returns the distinct domains in lexicographic order.
func (r *Result) SortedDomains() []string {
	out := make([]string, 0, len(r.Domains))
	for d := range r.Domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
