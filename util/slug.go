package util

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidSlug reports whether val is URL-safe: letters, digits, hyphens and
// underscores only.
func ValidSlug(val string) bool {
	return slugPattern.MatchString(val)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-_]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}
