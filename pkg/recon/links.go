package recon

import (
	"regexp"
)

// Known social-platform profile URL shapes. The left anchor keeps short
// hosts like x.com from matching inside unrelated domains. Matches are
// normalized to fully-qualified https URLs.
var socialLinkPattern = regexp.MustCompile(
	`(?i)(?:^|[^\w.-])(linkedin\.com/in/[a-zA-Z0-9_-]+` +
		`|twitter\.com/[a-zA-Z0-9_]+` +
		`|x\.com/[a-zA-Z0-9_]+` +
		`|instagram\.com/[a-zA-Z0-9_]+` +
		`|facebook\.com/[a-zA-Z0-9.]+)`)

// ExtractSocialLinks scans free text (typically a profile README) for
// social-platform profile mentions and returns them as deduplicated
// fully-qualified URLs.
func ExtractSocialLinks(text string) []string {
	matches := socialLinkPattern.FindAllStringSubmatch(text, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, "https://"+m[1])
	}
	return uniqueLinks(links)
}

// identityLinks collects the link fields a code-host profile exposes
// directly: the main profile URL, the linked blog, and the Twitter handle.
func identityLinks(id Identity) []string {
	var links []string
	if id.ProfileURL != "" {
		links = append(links, id.ProfileURL)
	}
	if id.Blog != "" {
		links = append(links, id.Blog)
	}
	if id.TwitterHandle != "" {
		links = append(links, "https://twitter.com/"+id.TwitterHandle)
	}
	return links
}
