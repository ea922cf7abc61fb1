package enrichment

import (
	"net/url"
	"strings"
)

// SourceClassifier buckets referrer URLs into traffic sources.
type SourceClassifier struct {
	searchEngines []string
	socialMedia   []string
	aiPlatforms   []string
}

func NewSourceClassifier() *SourceClassifier {
	return &SourceClassifier{
		searchEngines: []string{
			"google.com",
			"bing.com",
			"yahoo.com",
			"duckduckgo.com",
			"yandex.ru",
			"ecosia.org",
		},
		socialMedia: []string{
			"facebook.com",
			"twitter.com",
			"x.com",
			"instagram.com",
			"linkedin.com",
			"pinterest.com",
			"reddit.com",
			"tiktok.com",
			"youtube.com",
		},
		aiPlatforms: []string{
			"chatgpt.com",
			"claude.ai",
			"gemini.google.com",
			"perplexity.ai",
			"copilot.microsoft.com",
		},
	}
}

// ClassifySource returns "Search", "Social", "AI", "Direct", or "Referral".
// Empty or unparseable referrers count as direct traffic.
func (c *SourceClassifier) ClassifySource(referrer string) string {
	if referrer == "" {
		return "Direct"
	}

	parsed, err := url.Parse(referrer)
	if err != nil {
		return "Direct"
	}

	hostname := strings.ToLower(parsed.Hostname())
	hostname = strings.TrimPrefix(hostname, "www.")
	if hostname == "" {
		return "Direct"
	}

	// AI platforms first: gemini.google.com must not fall through to the
	// google.com search rule.
	for _, d := range c.aiPlatforms {
		if hostname == d || strings.HasSuffix(hostname, "."+d) {
			return "AI"
		}
	}
	for _, d := range c.searchEngines {
		if hostname == d || strings.HasSuffix(hostname, "."+d) {
			return "Search"
		}
	}
	for _, d := range c.socialMedia {
		if hostname == d || strings.HasSuffix(hostname, "."+d) {
			return "Social"
		}
	}
	return "Referral"
}
