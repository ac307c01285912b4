package collectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/osint-surface/pkg/logging"
	"github.com/user/osint-surface/pkg/recon"
)

const maxDescriptionLen = 250

// Enricher builds company-level metadata for a domain from public search
// results. Best effort: a failed search still yields a usable record.
type Enricher struct {
	ddg *DuckDuckGo
}

func NewEnricher(ddg *DuckDuckGo) *Enricher {
	return &Enricher{ddg: ddg}
}

func (e *Enricher) Details(ctx context.Context, domain string) recon.Enrichment {
	name := companyNameFromDomain(domain)
	description := "No description found."

	hits, err := e.ddg.results(ctx, fmt.Sprintf("%s company profile information", name), 1)
	if err != nil {
		logging.Debugf("enrichment search for %s failed: %v", domain, err)
	} else if len(hits) > 0 && hits[0].Snippet != "" {
		description = truncate(hits[0].Snippet, maxDescriptionLen)
	}

	return recon.Enrichment{
		Name:        name,
		Description: description,
		Employees:   "OSINT estimate",
		LinkedIn:    "https://www.linkedin.com/company/" + strings.ToLower(name),
	}
}

func companyNameFromDomain(domain string) string {
	name := strings.SplitN(domain, ".", 2)[0]
	if name == "" {
		return domain
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// truncate shortens s to at most n runes, marking the cut with an
// ellipsis. Snippets are frequently non-ASCII, so slicing on bytes could
// split a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
