// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// SiteRule describes the profile-page URL shape accepted by the extractor.
type SiteRule struct {
	// Domain is the registrable domain; subdomains such as "es." are accepted.
	Domain string
	// ProfileSegment is the first path segment of a profile page.
	ProfileSegment string
	// CanonicalHost replaces the matched host in canonical URLs.
	CanonicalHost string
}

// LinkedIn is the profile URL shape for linkedin.com/in/<slug>.
var LinkedIn = SiteRule{
	Domain:         "linkedin.com",
	ProfileSegment: "in",
	CanonicalHost:  "www.linkedin.com",
}

// maxNameLength drops titles that are headlines or directory pages rather
// than a person's name.
const maxNameLength = 60

var (
	// brandSuffix matches " | LinkedIn", " - LinkedIn España" and similar tails.
	brandSuffix = regexp.MustCompile(`(?i)\s?[|\-–—]\s?LinkedIn.*$`)

	// nameSeparator splits "Jane Doe - Engineer - ACME" into its parts.
	nameSeparator = regexp.MustCompile(`\s[-–—|]\s`)
)

// Extract converts one page of raw results into profile records. Items whose
// link is not a profile page, or whose title yields no usable name, are
// dropped silently.
func Extract(items []types.RawResult, site SiteRule) []types.ProfileRecord {
	var records []types.ProfileRecord
	for _, item := range items {
		link, ok := CanonicalURL(item.Link, site)
		if !ok {
			continue
		}
		name := CleanName(item.Title)
		if !plausibleName(name) {
			continue
		}
		records = append(records, types.ProfileRecord{
			Name:        name,
			LinkedInURL: link,
			RoleSnippet: CleanSnippet(item.Snippet),
		})
	}
	return records
}

// CleanName derives a display name from a search result title by removing
// the site brand suffix and anything after the first separator. The result
// is best effort.
func CleanName(title string) string {
	cleaned := brandSuffix.ReplaceAllString(title, "")
	parts := nameSeparator.Split(cleaned, 2)
	return strings.Join(strings.Fields(parts[0]), " ")
}

// CleanSnippet flattens a result snippet onto one line.
func CleanSnippet(snippet string) string {
	return strings.Join(strings.Fields(snippet), " ")
}

func plausibleName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return false
	}
	return !strings.Contains(strings.ToLower(name), "profiles")
}

// CanonicalURL validates link against site and returns its canonical form
// https://<CanonicalHost>/<ProfileSegment>/<slug>. Query strings, fragments,
// trailing path segments and country subdomains are dropped.
func CanonicalURL(link string, site SiteRule) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	domain := strings.ToLower(site.Domain)
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] != site.ProfileSegment || segments[1] == "" {
		return "", false
	}

	canonical := url.URL{
		Scheme: "https",
		Host:   site.CanonicalHost,
		Path:   "/" + site.ProfileSegment + "/" + segments[1],
	}
	return canonical.String(), true
}
