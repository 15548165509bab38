package agent

import "github.com/Lixing-Zhang/menu-assistant/internal/models"

// Trigger phrases carried in Action values. Each one re-enters the
// classifier at a known rule when the client resubmits it.
const (
	PhrasePopular = "What are popular items?"
	PhraseBurgers = "Show me burgers"
	PhraseNearest = "Find the nearest McDonald's"
	PhraseDeals   = "What deals are available?"
	PhraseMenu    = "Show me the menu"
)

// PhraseCalories is the nutrition question for a named item
func PhraseCalories(name string) string {
	return "How many calories are in " + name + "?"
}

// PhraseAllergens is the allergen question for a named item
func PhraseAllergens(name string) string {
	return "What allergens are in " + name + "?"
}

func baseActions() []models.Action {
	return []models.Action{
		{Label: "Show popular items", Value: PhrasePopular},
		{Label: "View burgers", Value: PhraseBurgers},
		{Label: "Find nearest McDonald's", Value: PhraseNearest},
	}
}

func itemActions(item models.MenuItem) []models.Action {
	return []models.Action{
		{Label: "Calories for " + item.Name, Value: PhraseCalories(item.Name)},
		{Label: "Allergens in " + item.Name, Value: PhraseAllergens(item.Name)},
		{Label: "Any deals?", Value: PhraseDeals},
	}
}
