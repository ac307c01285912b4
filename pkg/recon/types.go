package recon

import "time"

// PersonStatus classifies the confidence of an identity-to-organization link.
type PersonStatus string

const (
	StatusUnverified        PersonStatus = "unverified"
	StatusHighRiskShadowIT  PersonStatus = "high_risk_shadow_it"
	StatusVerifiedOrgMember PersonStatus = "verified_org_member"
)

// PersonSource tags which discovery path produced a record.
type PersonSource string

const (
	SourceOrgScan     PersonSource = "org_scan"
	SourcePivotSearch PersonSource = "pivot_search"
	SourcePeopleOSINT PersonSource = "people_osint"
)

const (
	// UnknownName is the placeholder for search hits where no display name
	// could be extracted. Records carrying it are never merged with each other.
	UnknownName = "Unknown"

	// NoUsername marks records without a source-specific handle so consumers
	// never have to branch on an empty field.
	NoUsername = "N/A"
)

// Person is one discovered individual linked to the target organization.
type Person struct {
	Username        string       `json:"username"`
	DisplayName     string       `json:"display_name"`
	Status          PersonStatus `json:"status"`
	ClaimedCompany  string       `json:"claimed_company"`
	ProfileURL      string       `json:"profile_url"`
	AssociatedLinks []string     `json:"associated_links"`
	Source          PersonSource `json:"source"`
}

// Repository is a discovered code repository. RiskScore is fixed per
// discovery path: repositories owned by the organization's own account score
// lower than repositories that merely mention the organization name.
type Repository struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	LastUpdated string `json:"last_updated,omitempty"`
	RiskScore   int    `json:"risk_score"`
}

// RiskLevel is an ordered category for infrastructure findings.
type RiskLevel string

const (
	RiskInfo   RiskLevel = "Info"
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// InfraFinding is a single fingerprint fact: detected software, an
// interpreted DNS TXT record, or an exposed subdomain portal.
type InfraFinding struct {
	Label string    `json:"label"`
	Risk  RiskLevel `json:"risk_level"`
}

// Enrichment holds company-level metadata gathered from public sources.
type Enrichment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Employees   string `json:"employees"`
	LinkedIn    string `json:"linkedin"`
}

// Provenance states whether a result reflects a fresh scan or a cached
// snapshot. A cached result must never be presented as live.
type Provenance string

const (
	ProvenanceLive   Provenance = "live"
	ProvenanceCached Provenance = "cached"
)

// ScanResult is the unit persisted and reported; immutable once written.
type ScanResult struct {
	People            []Person       `json:"people"`
	Infra             []InfraFinding `json:"infra"`
	Repositories      []Repository   `json:"repositories"`
	ExposedSubdomains []InfraFinding `json:"exposed_subdomains"`
	Enrichment        Enrichment     `json:"enrichment"`
	RiskScore         int            `json:"risk_score"`
	Timestamp         time.Time      `json:"timestamp"`
	Provenance        Provenance     `json:"provenance"`
}

// Identity is a code-host profile as returned by the identity-lookup
// collaborator. Affiliation verification happens in the pivot engine, not
// in the collector.
type Identity struct {
	Username      string
	RealName      string
	Company       string
	Bio           string
	ProfileURL    string
	TwitterHandle string
	Blog          string
}

// Candidate is one hit from a people-search backend.
type Candidate struct {
	Name    string
	URL     string
	Backend string
}
