package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCardID creates a readable card ID of the form {cardType}-{slug}-{8charHex}.
//
// Example:
//   - Input: cardType="combat", templateID="Forest Wolf"
//   - Output: "combat-forest-wolf-a3f8e2b1"
//
// An empty template ID yields "{cardType}-{8charHex}".
func GenerateCardID(cardType, templateID string) string {
	slug := slugify(templateID)
	if slug == "" {
		return cardType + "-" + shortUUID()
	}
	return cardType + "-" + slug + "-" + shortUUID()
}

// GenerateRunID creates an ID for a simulation run
func GenerateRunID() string {
	return "run-" + shortUUID()
}

// GenerateHeroID creates an ID for a recruited hero
func GenerateHeroID() string {
	return "hero-" + shortUUID()
}

// GenerateEventID creates a unique event ID
func GenerateEventID() string {
	return uuid.NewString()
}

// slugify lowercases and collapses anything that is not a letter or digit into single hyphens
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// shortUUID creates an 8-character hex string from a UUID
func shortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
