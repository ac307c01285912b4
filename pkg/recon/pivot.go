package recon

import (
	"context"
	"strings"

	"github.com/user/osint-surface/pkg/logging"
)

// PivotEngine turns identities discovered by one source into verified
// code-host records. Verification uses a single rule: the profile's
// self-reported affiliation (bio or company field) must contain the target
// organization name, case-insensitive. Failures contribute nothing and are
// never escalated.
type PivotEngine struct {
	Organization string
	Code         CodeHost
}

func (e *PivotEngine) affiliated(id Identity) bool {
	org := strings.ToLower(e.Organization)
	return strings.Contains(strings.ToLower(id.Bio), org) ||
		strings.Contains(strings.ToLower(id.Company), org)
}

// VerifyContributor checks a repository contributor's profile against the
// affiliation rule. A passing contributor is classified verified_org_member.
func (e *PivotEngine) VerifyContributor(ctx context.Context, handle string) (Person, bool) {
	id, found, err := e.Code.LookupIdentity(ctx, handle)
	if err != nil {
		logging.Debugf("contributor lookup for %s failed: %v", handle, err)
		return Person{}, false
	}
	if !found || !e.affiliated(id) {
		return Person{}, false
	}

	name := id.RealName
	if name == "" {
		name = id.Username
	}
	return Person{
		Username:        id.Username,
		DisplayName:     name,
		Status:          StatusVerifiedOrgMember,
		ClaimedCompany:  id.Company,
		ProfileURL:      id.ProfileURL,
		AssociatedLinks: e.collectLinks(ctx, id),
		Source:          SourceOrgScan,
	}, true
}

// Pivot attempts to locate a code-host identity for a person discovered via
// generic search. A match found this way lives outside the sanctioned
// organizational account and is always classified high_risk_shadow_it; the
// correlator resolves any same-name duplicate downstream.
func (e *PivotEngine) Pivot(ctx context.Context, candidate Person) (Person, bool) {
	if candidate.DisplayName == "" || candidate.DisplayName == UnknownName {
		return Person{}, false
	}

	id, found, err := e.Code.LookupIdentity(ctx, candidate.DisplayName)
	if err != nil {
		logging.Debugf("pivot lookup for %q failed: %v", candidate.DisplayName, err)
		return Person{}, false
	}
	if !found || !e.affiliated(id) {
		return Person{}, false
	}

	name := id.RealName
	if name == "" {
		name = candidate.DisplayName
	}
	return Person{
		Username:        id.Username,
		DisplayName:     name,
		Status:          StatusHighRiskShadowIT,
		ClaimedCompany:  id.Company,
		ProfileURL:      id.ProfileURL,
		AssociatedLinks: e.collectLinks(ctx, id),
		Source:          SourcePivotSearch,
	}, true
}

// collectLinks unions the profile's own link fields with social mentions
// extracted from the profile document. The document fetch is optional; a
// failure just yields fewer links.
func (e *PivotEngine) collectLinks(ctx context.Context, id Identity) []string {
	links := identityLinks(id)
	doc, found, err := e.Code.FetchProfileDocument(ctx, id.Username)
	if err != nil {
		logging.Debugf("profile document fetch for %s failed: %v", id.Username, err)
	} else if found {
		links = append(links, ExtractSocialLinks(doc)...)
	}
	return uniqueLinks(links)
}
