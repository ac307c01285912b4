package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSocialLinks(t *testing.T) {
	readme := `# Hi, I'm Jane
Find me on [LinkedIn](https://linkedin.com/in/jane-doe) or twitter.com/janedoe.
Also instagram.com/janedoe and https://facebook.com/jane.doe
Repeated: linkedin.com/in/jane-doe`

	links := ExtractSocialLinks(readme)
	assert.ElementsMatch(t, []string{
		"https://linkedin.com/in/jane-doe",
		"https://twitter.com/janedoe",
		"https://instagram.com/janedoe",
		"https://facebook.com/jane.doe",
	}, links)
}

func TestExtractSocialLinksEmptyText(t *testing.T) {
	assert.Empty(t, ExtractSocialLinks("no profile mentions here"))
}

func TestExtractSocialLinksRequiresHostBoundary(t *testing.T) {
	// Longer domains ending in a platform host must not yield a profile
	// link for that platform.
	assert.Empty(t, ExtractSocialLinks("watch it on netflix.com/title/81040344"))
	assert.Empty(t, ExtractSocialLinks("https://not-x.com/someuser"))

	assert.Equal(t, []string{"https://x.com/janedoe"},
		ExtractSocialLinks("DMs open at x.com/janedoe"))
	assert.Equal(t, []string{"https://x.com/janedoe"},
		ExtractSocialLinks("x.com/janedoe"))
	assert.Equal(t, []string{"https://x.com/janedoe"},
		ExtractSocialLinks("see (https://x.com/janedoe)"))
}

func TestIdentityLinks(t *testing.T) {
	links := identityLinks(Identity{
		ProfileURL:    "https://github.com/janed",
		Blog:          "https://jane.example",
		TwitterHandle: "janedoe",
	})
	assert.Equal(t, []string{
		"https://github.com/janed",
		"https://jane.example",
		"https://twitter.com/janedoe",
	}, links)

	assert.Empty(t, identityLinks(Identity{}))
}
