package agent

import (
	"slices"
	"strings"

	"github.com/Lixing-Zhang/menu-assistant/internal/models"
)

// PopularTag marks items returned by Popular
const PopularTag = "popular"

// popularFallbackSize is how many leading items Popular returns when nothing is tagged
const popularFallbackSize = 6

// FindItem returns the first item, in collection order, whose normalized name
// equals the normalized query, is contained in it, contains it, or whose
// normalized tag is contained in the query. There is no relevance ranking.
func FindItem(query string, items []models.MenuItem) (models.MenuItem, bool) {
	q := Normalize(query)
	for _, item := range items {
		if itemMatches(q, item) {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

func itemMatches(q string, item models.MenuItem) bool {
	name := Normalize(item.Name)
	if name == q || strings.Contains(q, name) || strings.Contains(name, q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(q, Normalize(tag)) {
			return true
		}
	}
	return false
}

// ListByCategory returns the items whose normalized category equals or
// contains the normalized label, preserving collection order. An empty
// result is not an error.
func ListByCategory(label string, items []models.MenuItem) []models.MenuItem {
	q := Normalize(label)
	matched := make([]models.MenuItem, 0)
	for _, item := range items {
		if strings.Contains(Normalize(item.Category), q) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Popular returns every item tagged "popular", or the first six items when none are
func Popular(items []models.MenuItem) []models.MenuItem {
	tagged := make([]models.MenuItem, 0)
	for _, item := range items {
		if item.HasTag(PopularTag) {
			tagged = append(tagged, item)
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	return slices.Clone(items[:min(popularFallbackSize, len(items))])
}
