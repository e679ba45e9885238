// Package parser extracts typed advisory data from scraped page fragments.
package parser

import (
	"fmt"
	"strings"

	"github.com/jamesh1234567/irish-travel-advisory-map/models"
)

// LevelFromClasses maps the class list of the DFA advisory accordion div to
// a level. The site tags the accordion with the advisory slug, e.g.
// <div class="accordion_travel do-not-travel accordion is-open">.
// Returns (LevelUnknown, false) when no known slug is present.
func LevelFromClasses(classAttr string) (models.Level, bool) {
	classes := strings.ToLower(classAttr)
	switch {
	case strings.Contains(classes, "do-not-travel"):
		return models.Level4, true
	case strings.Contains(classes, "avoid-non-essential-travel"),
		strings.Contains(classes, "avoid-unnecessary-travel"):
		return models.Level3, true
	case strings.Contains(classes, "high-degree-of-caution"),
		strings.Contains(classes, "high-degree-caution"):
		return models.Level2, true
	case strings.Contains(classes, "normal-precautions"):
		return models.Level1, true
	default:
		return models.LevelUnknown, false
	}
}

// LevelFromTitle matches the accordion heading text against the published
// advisory phrases. Fallback for pages where the div class carries no slug.
func LevelFromTitle(title string) (models.Level, bool) {
	text := strings.ToLower(strings.TrimSpace(title))
	switch {
	case strings.Contains(text, "do not travel"):
		return models.Level4, true
	case strings.Contains(text, "avoid non-essential travel"),
		strings.Contains(text, "avoid unnecessary travel"):
		return models.Level3, true
	case strings.Contains(text, "high degree of caution"):
		return models.Level2, true
	case strings.Contains(text, "normal precautions"):
		return models.Level1, true
	default:
		return models.LevelUnknown, false
	}
}

// CountryNameFromSlug turns a URL slug like "saudi-arabia" into a display
// name ("Saudi Arabia"). Canonicalization for the map happens later in the
// countries package.
func CountryNameFromSlug(slug string) string {
	slug = strings.Trim(slug, "/")
	if idx := strings.LastIndex(slug, "/"); idx >= 0 {
		slug = slug[idx+1:]
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// ValidateAdvisory ensures a scraped row is structurally complete. Rows
// with LevelUnknown are valid: the unknown marker is part of the contract.
func ValidateAdvisory(a *models.CountryAdvisory) error {
	if a == nil {
		return fmt.Errorf("advisory is nil")
	}
	if strings.TrimSpace(a.Country) == "" {
		return fmt.Errorf("advisory missing country name")
	}
	if strings.TrimSpace(a.SourceURL) == "" {
		return fmt.Errorf("advisory missing source URL for %s", a.Country)
	}
	if a.Level.Valid() && strings.TrimSpace(a.Label) == "" {
		return fmt.Errorf("advisory missing label for %s", a.Country)
	}
	if !a.Level.Valid() && a.Level != models.LevelUnknown {
		return fmt.Errorf("advisory level out of range for %s: %d", a.Country, int(a.Level))
	}
	return nil
}
