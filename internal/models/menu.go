package models

// MenuItem represents a single item on the restaurant menu.
// Items are loaded once at startup and never mutated afterwards.
type MenuItem struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Category  string   `json:"category" yaml:"category"`
	Calories  int      `json:"calories" yaml:"calories"`
	PriceUSD  float64  `json:"priceUSD" yaml:"priceUSD"`
	Allergens []string `json:"allergens" yaml:"allergens"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasTag reports whether the item carries the given tag verbatim
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
