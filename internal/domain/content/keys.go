package content

import "strings"

// TagPrefix marks a requirement key that any item carrying the tag can satisfy
const TagPrefix = "tag:"

// TagKey builds a requirement key for a tag
func TagKey(tag string) string {
	return TagPrefix + tag
}

// TagOf splits a requirement key into its tag when it is a tag reference
func TagOf(key string) (string, bool) {
	if strings.HasPrefix(key, TagPrefix) {
		return strings.TrimPrefix(key, TagPrefix), true
	}
	return "", false
}
