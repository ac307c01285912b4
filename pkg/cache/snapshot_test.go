package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/osint-surface/pkg/recon"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "cache.json"))
}

func sampleResult() recon.ScanResult {
	return recon.ScanResult{
		People: []recon.Person{{
			Username:        "janed",
			DisplayName:     "Jane Doe",
			Status:          recon.StatusVerifiedOrgMember,
			ProfileURL:      "https://github.com/janed",
			AssociatedLinks: []string{"https://linkedin.com/in/jane-doe"},
			Source:          recon.SourceOrgScan,
		}},
		Infra:             []recon.InfraFinding{{Label: "SPF Mail Security", Risk: recon.RiskLow}},
		Repositories:      []recon.Repository{{Name: "acme-api", URL: "https://github.com/acme/acme-api", RiskScore: 10}},
		ExposedSubdomains: []recon.InfraFinding{{Label: "vpn.acme.com", Risk: recon.RiskHigh}},
		Enrichment:        recon.Enrichment{Name: "Acme"},
		RiskScore:         90,
		Timestamp:         time.Now().Truncate(time.Second),
		Provenance:        recon.ProvenanceLive,
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := testStore(t)
	written := sampleResult()

	require.NoError(t, store.Write("acme|acme.com", written))
	loaded, found := store.Read("acme|acme.com")
	require.True(t, found)

	// Everything round-trips except provenance, which becomes cached.
	assert.Equal(t, recon.ProvenanceCached, loaded.Provenance)
	assert.Equal(t, written.People, loaded.People)
	assert.Equal(t, written.Infra, loaded.Infra)
	assert.Equal(t, written.Repositories, loaded.Repositories)
	assert.Equal(t, written.ExposedSubdomains, loaded.ExposedSubdomains)
	assert.Equal(t, written.Enrichment, loaded.Enrichment)
	assert.Equal(t, written.RiskScore, loaded.RiskScore)
	assert.True(t, written.Timestamp.Equal(loaded.Timestamp))
}

func TestReadMissingKey(t *testing.T) {
	store := testStore(t)
	_, found := store.Read("nobody|nowhere.com")
	assert.False(t, found)
}

func TestWriteReplacesEntry(t *testing.T) {
	store := testStore(t)
	first := sampleResult()
	require.NoError(t, store.Write("acme|acme.com", first))

	second := sampleResult()
	second.Repositories = nil
	second.RiskScore = 50
	require.NoError(t, store.Write("acme|acme.com", second))

	loaded, found := store.Read("acme|acme.com")
	require.True(t, found)
	assert.Empty(t, loaded.Repositories)
	assert.Equal(t, 50, loaded.RiskScore)
}

func TestEntriesAreIndependentPerKey(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Write("acme|acme.com", sampleResult()))

	other := sampleResult()
	other.RiskScore = 30
	require.NoError(t, store.Write("globex|globex.com", other))

	loaded, found := store.Read("acme|acme.com")
	require.True(t, found)
	assert.Equal(t, 90, loaded.RiskScore)
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	store := New(path)

	_, found := store.Read("acme|acme.com")
	assert.False(t, found)

	// A corrupt store is recoverable: the next write replaces it.
	require.NoError(t, store.Write("acme|acme.com", sampleResult()))
	_, found = store.Read("acme|acme.com")
	assert.True(t, found)
}

func TestUnknownFieldsIgnoredOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	doc := `{
		"acme|acme.com": {
			"timestamp": "2026-01-02T15:04:05Z",
			"future_field": "ignored",
			"result": {
				"people": [],
				"repositories": [{"name": "acme-api", "url": "u", "description": "", "risk_score": 10}],
				"risk_score": 70,
				"some_new_field": 42
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	store := New(path)
	loaded, found := store.Read("acme|acme.com")
	require.True(t, found)
	assert.Equal(t, 70, loaded.RiskScore)
	require.Len(t, loaded.Repositories, 1)
	assert.Equal(t, "acme-api", loaded.Repositories[0].Name)
	// Absent timestamp on the result falls back to the entry timestamp.
	assert.Equal(t, 2026, loaded.Timestamp.Year())
}
