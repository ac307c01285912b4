package recon

import (
	"context"
	"errors"
)

// ErrRateLimited signals that a source refused to serve the request because
// of rate limiting or blocking. It is an expected condition handled by the
// cache fallback, never a crash.
var ErrRateLimited = errors.New("source rate limited")

// ErrNoData is returned when live collection failed and no cached snapshot
// exists for the target. It is distinct from an empty-but-successful scan.
var ErrNoData = errors.New("no live data and no cached snapshot available")

// CodeHost is the code-hosting collaborator (repository search, contributor
// listing, identity lookup, profile document fetch).
type CodeHost interface {
	// SearchRepositories returns repositories for the organization, or
	// ErrRateLimited when the source is unavailable.
	SearchRepositories(ctx context.Context, org string) ([]Repository, error)
	// Contributors returns contributor handles for "owner/repo"; empty on
	// lookup failure.
	Contributors(ctx context.Context, repoPath string) ([]string, error)
	// LookupIdentity resolves a handle or display name to a public profile.
	// found is false when the profile does not exist.
	LookupIdentity(ctx context.Context, handleOrName string) (id Identity, found bool, err error)
	// FetchProfileDocument returns the identity's self-authored profile
	// document (README) as raw text.
	FetchProfileDocument(ctx context.Context, username string) (text string, found bool, err error)
}

// InfraScanner fingerprints the target domain's exposed infrastructure.
// Methods degrade to empty results on failure; infrastructure collection
// never aborts the pipeline.
type InfraScanner interface {
	AnalyzeDNS(ctx context.Context) []InfraFinding
	AnalyzeHeaders(ctx context.Context) []InfraFinding
	ProbeSubdomains(ctx context.Context) []InfraFinding
}

// Enricher gathers company-level metadata for a domain.
type Enricher interface {
	Details(ctx context.Context, domain string) Enrichment
}

// PeopleSearcher is one pluggable people-search backend.
type PeopleSearcher interface {
	Name() string
	Search(ctx context.Context, company string, limit int) ([]Candidate, error)
}

// SnapshotStore persists the last successful scan per target key.
type SnapshotStore interface {
	// Write durably replaces the entry for key. A reader must never observe
	// a half-written entry.
	Write(key string, result ScanResult) error
	// Read returns the stored result with provenance set to cached, or
	// found=false. A corrupt store reads as empty.
	Read(key string) (result ScanResult, found bool)
}
