package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/osint-surface/pkg/recon"
)

func TestAnalyzeHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, browserUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Server", "nginx/1.25")
		w.Header().Set("X-Powered-By", "PHP/8.2")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000")
		fmt.Fprint(w, `<html><body><link href="/wp-content/themes/x.css"></body></html>`)
	}))
	defer ts.Close()

	infra := NewInfra("acme.com")
	infra.fetchURL = ts.URL

	findings := infra.AnalyzeHeaders(context.Background())
	labels := make([]string, 0, len(findings))
	for _, f := range findings {
		labels = append(labels, f.Label)
	}
	assert.Contains(t, labels, "Server: nginx/1.25")
	assert.Contains(t, labels, "PHP/8.2")
	assert.Contains(t, labels, "HSTS Security")
	assert.Contains(t, labels, "WordPress CMS")
	assert.NotContains(t, labels, "React Frontend")
}

func TestAnalyzeHeadersRiskLevels(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "Apache")
		fmt.Fprint(w, "<html>react-dom bundle</html>")
	}))
	defer ts.Close()

	infra := NewInfra("acme.com")
	infra.fetchURL = ts.URL

	findings := infra.AnalyzeHeaders(context.Background())
	require.Len(t, findings, 2)
	assert.Equal(t, recon.RiskInfo, findings[0].Risk)
	assert.Equal(t, recon.InfraFinding{Label: "React Frontend", Risk: recon.RiskLow}, findings[1])
}

func TestAnalyzeHeadersConnectionFailure(t *testing.T) {
	infra := NewInfra("acme.invalid")
	infra.fetchURL = "http://127.0.0.1:1"

	assert.Empty(t, infra.AnalyzeHeaders(context.Background()))
}

func TestDNSServiceHintTable(t *testing.T) {
	// The TXT interpretation table drives AnalyzeDNS; pin its shape.
	markers := map[string]string{}
	for _, hint := range dnsServiceHints {
		markers[hint.marker] = hint.label
	}
	assert.Equal(t, "Google Workspace", markers["google-site-verification"])
	assert.Equal(t, "Microsoft Office 365", markers["outlook"])
	assert.Equal(t, "Atlassian Cloud", markers["atlassian"])
	assert.Equal(t, "SPF Mail Security", markers["v=spf1"])
}

func TestPortalLabelList(t *testing.T) {
	assert.Equal(t,
		[]string{"vpn", "jira", "wiki", "hr", "personio", "mail", "dev", "git", "test"},
		portalLabels)
}
