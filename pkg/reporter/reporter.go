// Package reporter writes crawl results to their output file.
package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"domainsift/internal/models"
)

// Reporter formats a crawl result as a domain list. With counts enabled each
// line carries the occurrence count and lines are ordered by descending
// count; without counts the file holds bare domains in lexicographic order.
type Reporter struct {
	counts bool
}

// New creates a Reporter. counts selects the counted output variant.
func New(counts bool) *Reporter {
	return &Reporter{counts: counts}
}

// Write renders the domain list to w.
func (r *Reporter) Write(w io.Writer, result *models.Result) error {
	if r.counts {
		if _, err := fmt.Fprintln(w, "# Domain\tCount"); err != nil {
			return err
		}
		for _, dc := range result.SortedCounts() {
			if _, err := fmt.Fprintf(w, "%s\t%d\n", dc.Domain, dc.Count); err != nil {
				return err
			}
		}
		return nil
	}
	for _, d := range result.SortedDomains() {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile renders the domain list into the file at path, replacing any
// existing content.
func (r *Reporter) WriteFile(path string, result *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Write(f, result); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// OutputFilename derives an output path from the crawled domain plus a short
// random suffix, e.g. "example_com_3f2a1b9c.txt". The suffix only avoids
// collisions between runs; nothing depends on its exact value.
func OutputFilename(domain string) string {
	base := strings.ReplaceAll(domain, ".", "_")
	return fmt.Sprintf("%s_%s.txt", base, uuid.NewString()[:8])
}
