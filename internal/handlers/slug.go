package handlers

import (
	"fmt"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a title into a URL-safe slug
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// normalizeTags lowercases tags and drops case-insensitive duplicates while
// preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// validateTags enforces the tag-set constraints beyond what struct tags can
// express: at most 10 after case-insensitive dedup.
func validateTags(tags []string) error {
	if len(normalizeTags(tags)) > 10 {
		return fmt.Errorf("at most 10 tags allowed")
	}
	return nil
}
