package collectors

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/user/osint-surface/pkg/logging"
	"github.com/user/osint-surface/pkg/recon"
)

// Common subdomain labels probed for exposed login portals.
var portalLabels = []string{"vpn", "jira", "wiki", "hr", "personio", "mail", "dev", "git", "test"}

// TXT record markers mapped to the service they betray.
var dnsServiceHints = []struct {
	marker string
	label  string
	risk   recon.RiskLevel
}{
	{"google-site-verification", "Google Workspace", recon.RiskLow},
	{"outlook", "Microsoft Office 365", recon.RiskLow},
	{"atlassian", "Atlassian Cloud", recon.RiskMedium},
	{"v=spf1", "SPF Mail Security", recon.RiskLow},
}

const (
	probeConcurrency = 3
	maxBodyBytes     = 1 << 20
	browserUserAgent = "Mozilla/5.0"
)

// Infra fingerprints a single target domain through DNS and web requests.
// All methods degrade to empty results on failure.
type Infra struct {
	Domain string

	// fetchURL overrides the probed web URL, for tests.
	fetchURL string

	resolver *net.Resolver
	client   *http.Client
}

func NewInfra(domain string) *Infra {
	return &Infra{
		Domain:   domain,
		resolver: net.DefaultResolver,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// AnalyzeDNS interprets the domain's TXT records into service findings.
func (s *Infra) AnalyzeDNS(ctx context.Context) []recon.InfraFinding {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	records, err := s.resolver.LookupTXT(ctx, s.Domain)
	if err != nil {
		logging.Debugf("dns txt lookup for %s failed: %v", s.Domain, err)
		return nil
	}

	var found []recon.InfraFinding
	seen := make(map[string]bool)
	for _, txt := range records {
		for _, hint := range dnsServiceHints {
			if strings.Contains(txt, hint.marker) && !seen[hint.label] {
				seen[hint.label] = true
				found = append(found, recon.InfraFinding{Label: hint.label, Risk: hint.risk})
			}
		}
	}
	return found
}

// AnalyzeHeaders fingerprints server software and frameworks from the
// response headers and body of the domain's landing page.
func (s *Infra) AnalyzeHeaders(ctx context.Context) []recon.InfraFinding {
	target := s.fetchURL
	if target == "" {
		target = "https://" + s.Domain
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		logging.Debugf("web header scan for %s failed: %v", s.Domain, err)
		return nil
	}
	defer resp.Body.Close()

	var found []recon.InfraFinding
	if server := resp.Header.Get("Server"); server != "" {
		found = append(found, recon.InfraFinding{Label: "Server: " + server, Risk: recon.RiskInfo})
	}
	if powered := resp.Header.Get("X-Powered-By"); powered != "" {
		found = append(found, recon.InfraFinding{Label: powered, Risk: recon.RiskMedium})
	}
	if resp.Header.Get("Strict-Transport-Security") != "" {
		found = append(found, recon.InfraFinding{Label: "HSTS Security", Risk: recon.RiskLow})
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return found
	}
	body := strings.ToLower(string(raw))
	if strings.Contains(body, "wp-content") {
		found = append(found, recon.InfraFinding{Label: "WordPress CMS", Risk: recon.RiskMedium})
	}
	if strings.Contains(body, "react") {
		found = append(found, recon.InfraFinding{Label: "React Frontend", Risk: recon.RiskLow})
	}
	return found
}

// ProbeSubdomains resolves a fixed list of common portal labels against the
// domain. Probes run under a small semaphore; output order follows the
// label list regardless of resolution timing.
func (s *Infra) ProbeSubdomains(ctx context.Context) []recon.InfraFinding {
	hits := make([]bool, len(portalLabels))
	sem := make(chan struct{}, probeConcurrency)
	var wg sync.WaitGroup

	for i, label := range portalLabels {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, hostname string) {
			defer wg.Done()
			defer func() { <-sem }()

			lookupCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()
			if addrs, err := s.resolver.LookupHost(lookupCtx, hostname); err == nil && len(addrs) > 0 {
				hits[i] = true
			}
		}(i, label+"."+s.Domain)
	}
	wg.Wait()

	var portals []recon.InfraFinding
	for i, hit := range hits {
		if hit {
			portals = append(portals, recon.InfraFinding{
				Label: portalLabels[i] + "." + s.Domain,
				Risk:  recon.RiskHigh,
			})
		}
	}
	return portals
}
