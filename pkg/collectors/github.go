package collectors

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/user/osint-surface/pkg/logging"
	"github.com/user/osint-surface/pkg/recon"
)

const (
	githubAPIBase  = "https://api.github.com"
	requestTimeout = 10 * time.Second

	// Fixed per-discovery-path risk: repositories under the organization's
	// own account are far less likely to be false positives than
	// repositories that merely mention the name.
	orgRepoRisk     = 10
	mentionRepoRisk = 30

	maxSearchResults = 15
)

// GitHub talks to the code-host API. An empty token means anonymous access
// with its tighter rate budget; the collector still works.
type GitHub struct {
	BaseURL string
	Token   string
	client  *http.Client
}

func NewGitHub(token string) *GitHub {
	return &GitHub{
		BaseURL: githubAPIBase,
		Token:   token,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (g *GitHub) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.Token != "" {
		req.Header.Set("Authorization", "token "+g.Token)
	}
	return g.client.Do(req)
}

type repoPayload struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updated_at"`
}

// SearchRepositories first lists the organization's own account; when no
// such account exists it falls back to a repository name search. 403/429
// on either call is reported as recon.ErrRateLimited so the orchestrator
// can fall back to the snapshot cache.
func (g *GitHub) SearchRepositories(ctx context.Context, org string) ([]recon.Repository, error) {
	resp, err := g.get(ctx, fmt.Sprintf("%s/orgs/%s/repos", g.BaseURL, url.PathEscape(org)))
	if err != nil {
		return nil, fmt.Errorf("org repository listing: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, recon.ErrRateLimited
	case http.StatusOK:
		var payload []repoPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("org repository listing: %w", err)
		}
		repos := make([]recon.Repository, 0, len(payload))
		for _, r := range payload {
			repos = append(repos, recon.Repository{
				Name:        r.Name,
				URL:         r.HTMLURL,
				Description: r.Description,
				LastUpdated: r.UpdatedAt,
				RiskScore:   orgRepoRisk,
			})
		}
		return repos, nil
	}

	// No organization account: search repositories mentioning the name.
	logging.Debugf("organization %q not found (status %d), searching name mentions", org, resp.StatusCode)
	return g.searchMentions(ctx, org)
}

func (g *GitHub) searchMentions(ctx context.Context, org string) ([]recon.Repository, error) {
	resp, err := g.get(ctx, fmt.Sprintf("%s/search/repositories?q=%s", g.BaseURL, url.QueryEscape(org)))
	if err != nil {
		return nil, fmt.Errorf("repository search: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, recon.ErrRateLimited
	case http.StatusOK:
	default:
		return nil, fmt.Errorf("repository search: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Items []repoPayload `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("repository search: %w", err)
	}

	items := payload.Items
	if len(items) > maxSearchResults {
		items = items[:maxSearchResults]
	}
	repos := make([]recon.Repository, 0, len(items))
	for _, r := range items {
		repos = append(repos, recon.Repository{
			Name:        r.FullName,
			URL:         r.HTMLURL,
			Description: r.Description,
			LastUpdated: r.UpdatedAt,
			RiskScore:   mentionRepoRisk,
		})
	}
	return repos, nil
}

// Contributors returns contributor handles for an "owner/repo" path, empty
// on any non-OK response.
func (g *GitHub) Contributors(ctx context.Context, repoPath string) ([]string, error) {
	resp, err := g.get(ctx, fmt.Sprintf("%s/repos/%s/contributors", g.BaseURL, repoPath))
	if err != nil {
		return nil, fmt.Errorf("contributor listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var payload []struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("contributor listing: %w", err)
	}
	handles := make([]string, 0, len(payload))
	for _, c := range payload {
		handles = append(handles, c.Login)
	}
	return handles, nil
}

// LookupIdentity resolves a handle or display name to a public profile.
func (g *GitHub) LookupIdentity(ctx context.Context, handleOrName string) (recon.Identity, bool, error) {
	resp, err := g.get(ctx, fmt.Sprintf("%s/users/%s", g.BaseURL, url.PathEscape(handleOrName)))
	if err != nil {
		return recon.Identity{}, false, fmt.Errorf("identity lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return recon.Identity{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return recon.Identity{}, false, fmt.Errorf("identity lookup: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Login           string `json:"login"`
		Name            string `json:"name"`
		Company         string `json:"company"`
		Bio             string `json:"bio"`
		TwitterUsername string `json:"twitter_username"`
		Blog            string `json:"blog"`
		HTMLURL         string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return recon.Identity{}, false, fmt.Errorf("identity lookup: %w", err)
	}

	return recon.Identity{
		Username:      payload.Login,
		RealName:      payload.Name,
		Company:       payload.Company,
		Bio:           payload.Bio,
		ProfileURL:    payload.HTMLURL,
		TwitterHandle: payload.TwitterUsername,
		Blog:          payload.Blog,
	}, true, nil
}

// FetchProfileDocument retrieves the self-authored profile README
// (the repository named after the user) as decoded text.
func (g *GitHub) FetchProfileDocument(ctx context.Context, username string) (string, bool, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/README.md",
		g.BaseURL, url.PathEscape(username), url.PathEscape(username))
	resp, err := g.get(ctx, u)
	if err != nil {
		return "", false, fmt.Errorf("profile document fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("profile document fetch: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", false, fmt.Errorf("profile document fetch: %w", err)
	}
	return string(decoded), true, nil
}
