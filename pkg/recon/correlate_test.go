package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelateMergesByConfidence(t *testing.T) {
	people := []Person{
		{DisplayName: "Jane Doe", Status: StatusUnverified, Source: SourcePeopleOSINT},
		{DisplayName: "Jane Doe", Status: StatusVerifiedOrgMember, Source: SourceOrgScan, Username: "janed"},
	}

	merged := Correlate(people)
	require.Len(t, merged, 1)
	assert.Equal(t, StatusVerifiedOrgMember, merged[0].Status)
	assert.Equal(t, "janed", merged[0].Username)
}

func TestCorrelateTieKeepsFirstDiscovered(t *testing.T) {
	people := []Person{
		{DisplayName: "Jane Doe", Status: StatusUnverified, Source: SourcePivotSearch, ProfileURL: "https://a.example"},
		{DisplayName: "Jane Doe", Status: StatusUnverified, Source: SourcePeopleOSINT, ProfileURL: "https://b.example"},
	}

	merged := Correlate(people)
	require.Len(t, merged, 1)
	assert.Equal(t, SourcePivotSearch, merged[0].Source)
	assert.Equal(t, "https://a.example", merged[0].ProfileURL)
}

func TestCorrelateUnionsLinks(t *testing.T) {
	people := []Person{
		{DisplayName: "Jane Doe", Status: StatusHighRiskShadowIT, Source: SourcePivotSearch,
			AssociatedLinks: []string{"https://linkedin.com/in/jane"}},
		{DisplayName: "Jane Doe", Status: StatusUnverified, Source: SourcePeopleOSINT,
			AssociatedLinks: []string{"https://twitter.com/jane"}},
	}

	merged := Correlate(people)
	require.Len(t, merged, 1)
	assert.Equal(t, StatusHighRiskShadowIT, merged[0].Status)
	// Links from every same-name record survive the merge.
	assert.ElementsMatch(t,
		[]string{"https://linkedin.com/in/jane", "https://twitter.com/jane"},
		merged[0].AssociatedLinks)
}

func TestCorrelateIdempotent(t *testing.T) {
	people := []Person{
		{DisplayName: "Jane Doe", Status: StatusVerifiedOrgMember, Source: SourceOrgScan,
			AssociatedLinks: []string{"https://a.example", "https://a.example"}},
		{DisplayName: "Jane Doe", Status: StatusUnverified, Source: SourcePeopleOSINT},
		{DisplayName: UnknownName, Status: StatusUnverified, Source: SourcePeopleOSINT},
		{DisplayName: "Bob", Status: StatusHighRiskShadowIT, Source: SourcePivotSearch},
	}

	once := Correlate(people)
	twice := Correlate(once)
	assert.Equal(t, once, twice)
}

func TestCorrelateKeepsUnknownNamesDistinct(t *testing.T) {
	people := []Person{
		{DisplayName: UnknownName, ProfileURL: "https://a.example", Source: SourcePeopleOSINT},
		{DisplayName: UnknownName, ProfileURL: "https://b.example", Source: SourcePeopleOSINT},
	}

	merged := Correlate(people)
	assert.Len(t, merged, 2)
}

func TestCorrelateFillsMissingUsername(t *testing.T) {
	merged := Correlate([]Person{{DisplayName: "Jane Doe", Source: SourcePeopleOSINT}})
	require.Len(t, merged, 1)
	assert.Equal(t, NoUsername, merged[0].Username)
}
