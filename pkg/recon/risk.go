package recon

const (
	baseRisk           = 30
	repoExposureRisk   = 40
	portalExposureRisk = 20
)

// AggregateRisk computes the deterministic aggregate risk score for a scan:
// base 30, +40 if any repository was found, +20 if any exposed-portal
// subdomain was found, clamped to [0,100]. The rule is intentionally an
// auditable constant formula reproducible from the inputs alone.
func AggregateRisk(r ScanResult) int {
	score := baseRisk
	if len(r.Repositories) > 0 {
		score += repoExposureRisk
	}
	if len(r.ExposedSubdomains) > 0 {
		score += portalExposureRisk
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
