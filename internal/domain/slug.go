package domain

import (
	"regexp"
	"strings"
)

var (
	slugCleanRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRegex = regexp.MustCompile(`[\s-]+`)
	slugValidRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify derives a URL-safe identifier from a display name:
// lowercase, spaces collapsed to single hyphens, everything else dropped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugCleanRegex.ReplaceAllString(s, "")
	s = slugSpaceRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is already in slug form. Used to
// validate organization subdomains, which are user-supplied.
func IsValidSlug(s string) bool {
	return len(s) >= 1 && len(s) <= 63 && slugValidRegex.MatchString(s)
}
