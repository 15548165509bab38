// Package agent maps a free-text chat message onto exactly one structured
// reply using an ordered list of keyword rules over a fixed menu.
package agent

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/menu-assistant/internal/models"
)

// Intent names the rule that produced a reply
type Intent string

const (
	IntentHelp      Intent = "help"
	IntentGreeting  Intent = "greeting"
	IntentLocation  Intent = "location"
	IntentDeals     Intent = "deals"
	IntentCategory  Intent = "category"
	IntentMenu      Intent = "menu"
	IntentNutrition Intent = "nutrition"
	IntentItem      Intent = "item"
	IntentPopular   Intent = "popular"
	IntentFallback  Intent = "fallback"
)

const (
	DefaultStoreLocatorURL = "https://www.mcdonalds.com/us/en-us/restaurant-locator.html"
	DefaultDealsURL        = "https://www.mcdonalds.com/us/en-us/deals.html"
)

const (
	helpText     = "Ask me about menu items, calories, allergens, deals, or finding a nearby restaurant."
	greetingText = "Hello! What can I help you find today? Menu, calories, allergens, deals, or locations?"
	fallbackText = "I can help with menu items, calories, allergens, deals, and finding nearby restaurants. " +
		"Try asking for 'burgers', 'Big Mac calories', or 'nearest store'."

	locationNotice     = "For accurate hours and availability, check the store locator."
	dealsNotice        = "Deals vary by location and time."
	nutritionNotice    = "Nutrition and prices can vary by region and serving size."
	availabilityNotice = "Availability varies by location and time of day."
)

var (
	greetingPattern = regexp.MustCompile(`^(hi|hello|hey)\b`)
	menuPattern     = regexp.MustCompile(`\bmenu\b`)

	locationKeywords  = []string{"nearest", "near me", "location", "store", "restaurant", "open"}
	dealKeywords      = []string{"deal", "offer", "coupon", "discount"}
	nutritionKeywords = []string{"calorie", "nutrition", "allergen", "ingredient"}
	popularKeywords   = []string{"popular", "recommend", "best"}
)

// categoryRule lists a category and the keywords that select it
type categoryRule struct {
	Category string
	Keywords []string
}

// categoryRules are checked in this order; the first hit wins
var categoryRules = []categoryRule{
	{Category: "Burgers", Keywords: []string{"burger"}},
	{Category: "Chicken", Keywords: []string{"chicken", "nuggets"}},
	{Category: "Breakfast", Keywords: []string{"breakfast"}},
	{Category: "Desserts", Keywords: []string{"dessert", "ice cream", "mcflurry", "pie"}},
	{Category: "Drinks", Keywords: []string{"drink", "coffee", "latte", "cafe", "iced"}},
}

// MenuCategories returns the fixed category names offered by the menu rule
func MenuCategories() []string {
	names := make([]string, len(categoryRules))
	for i, c := range categoryRules {
		names[i] = c.Category
	}
	return names
}

// Links holds the external pages surfaced by the location and deals rules
type Links struct {
	StoreLocatorURL string
	DealsURL        string
}

// DefaultLinks returns the built-in store locator and deals URLs
func DefaultLinks() Links {
	return Links{
		StoreLocatorURL: DefaultStoreLocatorURL,
		DealsURL:        DefaultDealsURL,
	}
}

// Reply is a classified result
type Reply struct {
	Intent Intent
	Result models.AgentResult
}

// message carries the raw input and its lower-cased form through the rules
type message struct {
	raw   string
	lower string
}

// rule pairs a name with a handler. The handler reports false to pass the
// message on to the next rule.
type rule struct {
	name    string
	respond func(m message) (Reply, bool)
}

// Agent classifies chat messages against a fixed menu. It holds no mutable
// state and is safe for concurrent use.
type Agent struct {
	items []models.MenuItem
	links Links
	rules []rule
}

// New creates an agent over items. Empty link fields fall back to the defaults.
func New(items []models.MenuItem, links Links) *Agent {
	defaults := DefaultLinks()
	if links.StoreLocatorURL == "" {
		links.StoreLocatorURL = defaults.StoreLocatorURL
	}
	if links.DealsURL == "" {
		links.DealsURL = defaults.DealsURL
	}

	a := &Agent{
		items: slices.Clone(items),
		links: links,
	}
	a.rules = a.buildRules()
	return a
}

// Classify runs the rules in order and returns the first reply. It never fails:
// an input no rule claims gets the fallback reply.
func (a *Agent) Classify(text string) Reply {
	m := message{raw: text, lower: strings.ToLower(text)}
	for _, r := range a.rules {
		if reply, ok := r.respond(m); ok {
			return reply
		}
	}
	return a.fallback()
}

// Respond returns only the result part of Classify
func (a *Agent) Respond(text string) models.AgentResult {
	return a.Classify(text).Result
}

func (a *Agent) buildRules() []rule {
	rules := []rule{
		{name: "help", respond: a.help},
		{name: "greeting", respond: a.greeting},
		{name: "location", respond: a.location},
		{name: "deals", respond: a.deals},
	}
	for _, c := range categoryRules {
		rules = append(rules, rule{name: "category:" + strings.ToLower(c.Category), respond: a.category(c)})
	}
	return append(rules,
		rule{name: "menu", respond: a.menu},
		rule{name: "item", respond: a.item},
		rule{name: "popular", respond: a.popular},
	)
}

func (a *Agent) help(m message) (Reply, bool) {
	if strings.TrimSpace(m.raw) != "" {
		return Reply{}, false
	}
	return reply(IntentHelp, helpText, baseActions(), ""), true
}

func (a *Agent) greeting(m message) (Reply, bool) {
	if !greetingPattern.MatchString(m.lower) {
		return Reply{}, false
	}
	return reply(IntentGreeting, greetingText, baseActions(), ""), true
}

func (a *Agent) location(m message) (Reply, bool) {
	if !containsAny(m.lower, locationKeywords) {
		return Reply{}, false
	}
	text := "Use the official store locator to find hours and the closest restaurant: " + a.links.StoreLocatorURL
	actions := []models.Action{
		{Label: "Open Store Locator", Value: a.links.StoreLocatorURL},
		{Label: "Show popular items", Value: PhrasePopular},
	}
	return reply(IntentLocation, text, actions, locationNotice), true
}

func (a *Agent) deals(m message) (Reply, bool) {
	if !containsAny(m.lower, dealKeywords) {
		return Reply{}, false
	}
	text := "You can view current deals on the official deals page: " + a.links.DealsURL
	actions := []models.Action{
		{Label: "View Deals", Value: a.links.DealsURL},
		{Label: "Popular items", Value: PhrasePopular},
	}
	return reply(IntentDeals, text, actions, dealsNotice), true
}

func (a *Agent) category(c categoryRule) func(m message) (Reply, bool) {
	return func(m message) (Reply, bool) {
		if !containsAny(m.lower, c.Keywords) {
			return Reply{}, false
		}
		items := ListByCategory(c.Category, a.items)
		return reply(IntentCategory, c.Category+":\n"+FormatItems(items), baseActions(), ""), true
	}
}

func (a *Agent) menu(m message) (Reply, bool) {
	if !menuPattern.MatchString(m.lower) {
		return Reply{}, false
	}
	var b strings.Builder
	b.WriteString("I can show:\n")
	for i, name := range MenuCategories() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + name)
	}
	b.WriteString("\n\nAsk for a category or an item.")
	return reply(IntentMenu, b.String(), baseActions(), ""), true
}

// item resolves an item named in the message. Nutrition questions get the
// nutrition summary; anything else gets the plain item summary. A nutrition
// question naming no known item is passed on to the later rules.
func (a *Agent) item(m message) (Reply, bool) {
	found, ok := FindItem(m.raw, a.items)
	if !ok {
		return Reply{}, false
	}

	if containsAny(m.lower, nutritionKeywords) {
		text := fmt.Sprintf("%s: %d calories. Allergens: %s. Price ~ %s (varies).",
			found.Name, found.Calories, formatAllergens(found.Allergens), formatPrice(found.PriceUSD))
		return reply(IntentNutrition, text, itemActions(found), nutritionNotice), true
	}

	text := fmt.Sprintf("%s: about %s — %d cal. Category: %s.",
		found.Name, formatPrice(found.PriceUSD), found.Calories, found.Category)
	return reply(IntentItem, text, itemActions(found), availabilityNotice), true
}

func (a *Agent) popular(m message) (Reply, bool) {
	if !containsAny(m.lower, popularKeywords) {
		return Reply{}, false
	}
	return reply(IntentPopular, "Popular picks:\n"+FormatItems(Popular(a.items)), baseActions(), ""), true
}

func (a *Agent) fallback() Reply {
	return reply(IntentFallback, fallbackText, baseActions(), "")
}

func reply(intent Intent, text string, actions []models.Action, notice string) Reply {
	return Reply{
		Intent: intent,
		Result: models.AgentResult{
			Text:    text,
			Actions: actions,
			Notice:  notice,
		},
	}
}
