package recon

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/user/osint-surface/pkg/logging"
)

// Pipeline phases, logged for traceability.
type phase string

const (
	phaseCollecting  phase = "collecting"
	phaseCorrelating phase = "correlating"
	phasePivoting    phase = "pivoting"
	phaseScoring     phase = "scoring"
	phasePersisting  phase = "persisting"
)

const (
	// Contributor verification is bounded to limit external call volume.
	maxContributorRepos    = 3
	maxContributorsPerRepo = 5

	// Upper bound on generic people-search results per scan.
	peopleSearchLimit = 8
)

// Orchestrator drives one full scan: collect, correlate, pivot, score,
// persist. Collaborators are injected; a scan owns its in-flight result
// exclusively until it is persisted. Concurrent scans against the same
// cache key require external mutual exclusion.
type Orchestrator struct {
	Organization string
	Domain       string

	Infra    InfraScanner
	Enricher Enricher
	Code     CodeHost
	People   []PeopleSearcher
	Pivot    *PivotEngine
	Store    SnapshotStore
}

// CacheKey identifies the snapshot slot for this target.
func (o *Orchestrator) CacheKey() string {
	return o.Organization + "|" + o.Domain
}

// Run executes the pipeline. When the repository source is unavailable it
// degrades to the last-known-good snapshot, merged with the freshly
// collected infrastructure findings (those collectors are not bound by the
// same rate budget and stay live even in a degraded result). ErrNoData is
// returned only when live collection and the cache lookup both fail.
func (o *Orchestrator) Run(ctx context.Context) (ScanResult, error) {
	o.logPhase(phaseCollecting)
	infra, subdomains, enrichment := o.collectInfra(ctx)

	repos, err := o.Code.SearchRepositories(ctx, o.Organization)
	if err != nil {
		logging.Infof("repository source unavailable (%v), trying snapshot cache", err)
		cached, found := o.Store.Read(o.CacheKey())
		if !found {
			return ScanResult{}, ErrNoData
		}
		cached.Infra = infra
		cached.ExposedSubdomains = subdomains
		cached.Enrichment = enrichment
		// The merged result carries live subdomain findings, so the cached
		// score would no longer match its own data.
		cached.RiskScore = AggregateRisk(cached)
		return cached, nil
	}

	o.logPhase(phaseCorrelating)
	osint := o.collectPeople(ctx)
	merged := o.verifyContributors(ctx, repos)

	o.logPhase(phasePivoting)
	merged = append(merged, o.pivotCandidates(ctx, osint, merged)...)
	merged = append(merged, osint...)
	people := Correlate(merged)

	o.logPhase(phaseScoring)
	result := ScanResult{
		People:            people,
		Infra:             infra,
		Repositories:      repos,
		ExposedSubdomains: subdomains,
		Enrichment:        enrichment,
		Timestamp:         time.Now(),
		Provenance:        ProvenanceLive,
	}
	result.RiskScore = AggregateRisk(result)

	o.logPhase(phasePersisting)
	if err := o.Store.Write(o.CacheKey(), result); err != nil {
		// The live result is still good; losing the snapshot only hurts the
		// next degraded scan.
		logging.Infof("warning: snapshot write failed: %v", err)
	}
	return result, nil
}

// collectInfra fans out the independent infrastructure collectors. They
// share no mutable state and are merged only here.
func (o *Orchestrator) collectInfra(ctx context.Context) ([]InfraFinding, []InfraFinding, Enrichment) {
	var (
		dns, headers, subdomains []InfraFinding
		enrichment               Enrichment
		wg                       sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		dns = o.Infra.AnalyzeDNS(ctx)
	}()
	go func() {
		defer wg.Done()
		headers = o.Infra.AnalyzeHeaders(ctx)
	}()
	go func() {
		defer wg.Done()
		subdomains = o.Infra.ProbeSubdomains(ctx)
	}()
	go func() {
		defer wg.Done()
		enrichment = o.Enricher.Details(ctx, o.Domain)
	}()
	wg.Wait()

	return append(dns, headers...), subdomains, enrichment
}

// collectPeople queries the people-search backends in order until the
// result limit is reached. A failing backend is skipped; results are
// deduplicated by profile URL.
func (o *Orchestrator) collectPeople(ctx context.Context) []Person {
	seen := make(map[string]bool)
	var people []Person

	for _, backend := range o.People {
		if len(people) >= peopleSearchLimit {
			break
		}
		candidates, err := backend.Search(ctx, o.Organization, peopleSearchLimit-len(people))
		if err != nil {
			logging.Debugf("people search backend %s failed: %v", backend.Name(), err)
			continue
		}
		for _, c := range candidates {
			if c.URL == "" || seen[c.URL] {
				continue
			}
			seen[c.URL] = true
			name := c.Name
			if name == "" {
				name = UnknownName
			}
			people = append(people, Person{
				Username:    NoUsername,
				DisplayName: name,
				Status:      StatusUnverified,
				ProfileURL:  c.URL,
				Source:      SourcePeopleOSINT,
			})
		}
	}
	return people
}

// verifyContributors gathers contributor identities from the first
// discovered repositories and verifies each against the affiliation rule.
// A failing repository or contributor is skipped, never fatal.
func (o *Orchestrator) verifyContributors(ctx context.Context, repos []Repository) []Person {
	var verified []Person
	for i, repo := range repos {
		if i >= maxContributorRepos {
			break
		}
		path := strings.TrimPrefix(repo.URL, "https://github.com/")
		handles, err := o.Code.Contributors(ctx, path)
		if err != nil {
			logging.Debugf("contributor listing for %s failed: %v", path, err)
			continue
		}
		if len(handles) > maxContributorsPerRepo {
			handles = handles[:maxContributorsPerRepo]
		}
		for _, handle := range handles {
			if p, ok := o.Pivot.VerifyContributor(ctx, handle); ok {
				verified = append(verified, p)
			}
		}
	}
	return verified
}

// pivotCandidates runs the pivot over generic-search identities that were
// not already matched through the organization scan.
func (o *Orchestrator) pivotCandidates(ctx context.Context, osint, known []Person) []Person {
	matched := make(map[string]bool, len(known))
	for _, p := range known {
		matched[p.DisplayName] = true
	}

	var pivoted []Person
	for _, candidate := range osint {
		if candidate.DisplayName == UnknownName || matched[candidate.DisplayName] {
			continue
		}
		if p, ok := o.Pivot.Pivot(ctx, candidate); ok {
			pivoted = append(pivoted, p)
		}
	}
	return pivoted
}

func (o *Orchestrator) logPhase(p phase) {
	logging.Debugf("pipeline phase: %s", p)
}
