package pools

import (
	"regexp"
	"strings"
)

// keywordRe matches names that read like a swimming facility.
var keywordRe = regexp.MustCompile(`(?i)\b(pool|swim|aquatic|aquatics|ymca|leisure|recreation|community)\b`)

// namePreference is the tag order tried before falling back to address tags.
// The locale placeholder is filled in by nameFromTags.
var namePreference = []string{
	"name",
	"official_name",
	"name:%s",
	"operator",
	"operator:name",
	"ref",
	"brand",
	"description",
	"note",
}

var addrFallbacks = []string{
	"addr:housename",
	"addr:place",
	"addr:street",
}

// nameFromTags derives a display name from a feature's tag map, first
// non-empty match wins. Returns "" when no tag yields anything usable.
func nameFromTags(tags map[string]string, locale string) string {
	for _, key := range namePreference {
		if strings.Contains(key, "%s") {
			key = strings.Replace(key, "%s", locale, 1)
		}
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}

	for _, key := range addrFallbacks {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}

	return ""
}
