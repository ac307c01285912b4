package collectors

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/user/osint-surface/pkg/recon"
)

// Rotating user agents for scraped search backends.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/119.0.0.0",
	"Mozilla/5.0 (X11; Linux x86_64) Firefox/118.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15",
}

// peopleQuery builds the profile-site dork used by every backend.
func peopleQuery(company string) string {
	return fmt.Sprintf(`site:linkedin.com/in/ "%s"`, company)
}

// GoogleCSE is the API-keyed people-search backend (Google Custom Search).
// BaseURL overrides the googleapis endpoint in tests.
type GoogleCSE struct {
	APIKey  string
	CX      string
	BaseURL string
}

func NewGoogleCSE(apiKey, cx string) *GoogleCSE {
	return &GoogleCSE{APIKey: apiKey, CX: cx}
}

func (g *GoogleCSE) Name() string { return "google-api" }

func (g *GoogleCSE) Search(ctx context.Context, company string, limit int) ([]recon.Candidate, error) {
	// The generated client has no default deadline; an unresponsive
	// endpoint must fail the backend, not stall the scan.
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	opts := []option.ClientOption{option.WithAPIKey(g.APIKey)}
	if g.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(g.BaseURL))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("custom search init: %w", err)
	}

	if limit > 10 {
		limit = 10 // API page maximum
	}
	resp, err := svc.Cse.List().
		Q(peopleQuery(company)).
		Cx(g.CX).
		Num(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}

	candidates := make([]recon.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		candidates = append(candidates, recon.Candidate{
			Name:    cleanResultTitle(item.Title),
			URL:     item.Link,
			Backend: g.Name(),
		})
	}
	return candidates, nil
}

// DuckDuckGo is the anonymous search-aggregator backend, scraping the HTML
// results endpoint. It also backs company enrichment.
type DuckDuckGo struct {
	BaseURL string
	client  *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		BaseURL: "https://html.duckduckgo.com/html/",
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, company string, limit int) ([]recon.Candidate, error) {
	hits, err := d.results(ctx, peopleQuery(company), limit)
	if err != nil {
		return nil, err
	}
	candidates := make([]recon.Candidate, 0, len(hits))
	for _, h := range hits {
		candidates = append(candidates, recon.Candidate{
			Name:    cleanResultTitle(h.Title),
			URL:     h.URL,
			Backend: d.Name(),
		})
	}
	return candidates, nil
}

type searchHit struct {
	Title   string
	URL     string
	Snippet string
}

// results fetches and parses one DuckDuckGo HTML results page.
func (d *DuckDuckGo) results(ctx context.Context, query string, limit int) ([]searchHit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.BaseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo search: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}

	var hits []searchHit
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		anchor := sel.Find("a.result__a").First()
		href, _ := anchor.Attr("href")
		href = resolveRedirect(href)
		if href == "" {
			return true
		}
		hits = append(hits, searchHit{
			Title:   strings.TrimSpace(anchor.Text()),
			URL:     href,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return len(hits) < limit
	})
	return hits, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

// SearchEngineDork scrapes a search-engine results page directly. Hit
// titles are not recoverable from the redirect markup, so candidates carry
// the unknown-name placeholder and identity comes later from the pivot.
type SearchEngineDork struct {
	BaseURL string
	client  *http.Client
}

func NewSearchEngineDork() *SearchEngineDork {
	return &SearchEngineDork{
		BaseURL: "https://www.google.com/search",
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (s *SearchEngineDork) Name() string { return "search-dork" }

func (s *SearchEngineDork) Search(ctx context.Context, company string, limit int) ([]recon.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s?q=%s&num=%d", s.BaseURL, url.QueryEscape(peopleQuery(company)), limit), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dork search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dork search: blocked with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dork search: %w", err)
	}

	seen := make(map[string]bool)
	var candidates []recon.Candidate
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		link := extractResultLink(href)
		if link == "" || !strings.Contains(link, "linkedin.com/in") || seen[link] {
			return true
		}
		seen[link] = true
		candidates = append(candidates, recon.Candidate{
			Name:    recon.UnknownName,
			URL:     link,
			Backend: s.Name(),
		})
		return len(candidates) < limit
	})
	return candidates, nil
}

// extractResultLink unwraps the "/url?q=" indirection on scraped result
// pages and passes direct links through.
func extractResultLink(href string) string {
	if strings.HasPrefix(href, "/url?") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return parsed.Query().Get("q")
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}

// cleanResultTitle trims the trailing "- LinkedIn" style suffix from a
// result title, leaving the candidate's display name.
func cleanResultTitle(title string) string {
	name := strings.TrimSpace(strings.SplitN(title, "-", 2)[0])
	return name
}
