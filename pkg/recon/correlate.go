package recon

// statusRank orders identity statuses by confidence for merge resolution.
func statusRank(s PersonStatus) int {
	switch s {
	case StatusVerifiedOrgMember:
		return 2
	case StatusHighRiskShadowIT:
		return 1
	default:
		return 0
	}
}

// Correlate merges partially-overlapping identity records from the
// organization-scan, pivot-search and generic OSINT paths into at most one
// record per display name. The record with the higher-confidence status
// wins; on a tie the record discovered first is kept. Associated links are
// unioned across all records sharing a name. Records named with the
// UnknownName placeholder carry no identity value and are kept distinct.
func Correlate(people []Person) []Person {
	out := make([]Person, 0, len(people))
	index := make(map[string]int)

	for _, p := range people {
		if p.Username == "" {
			p.Username = NoUsername
		}
		p.AssociatedLinks = uniqueLinks(p.AssociatedLinks)

		if p.DisplayName == "" || p.DisplayName == UnknownName {
			out = append(out, p)
			continue
		}

		i, seen := index[p.DisplayName]
		if !seen {
			index[p.DisplayName] = len(out)
			out = append(out, p)
			continue
		}

		kept := out[i]
		links := uniqueLinks(append(kept.AssociatedLinks, p.AssociatedLinks...))
		if statusRank(p.Status) > statusRank(kept.Status) {
			p.AssociatedLinks = links
			out[i] = p
		} else {
			kept.AssociatedLinks = links
			out[i] = kept
		}
	}
	return out
}

// uniqueLinks drops empty strings and duplicates while preserving order.
func uniqueLinks(links []string) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
