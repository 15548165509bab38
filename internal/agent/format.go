package agent

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Lixing-Zhang/menu-assistant/internal/models"
)

// FormatItems renders one "<name> — $<price> — <calories> cal" line per item
func FormatItems(items []models.MenuItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s — %s — %d cal", item.Name, formatPrice(item.PriceUSD), item.Calories)
	}
	return strings.Join(lines, "\n")
}

// formatPrice rounds to cents with exact halves going up, so 0.125 is $0.13.
// %.2f would round that tie to even.
func formatPrice(usd float64) string {
	cents := new(big.Float).SetPrec(128).SetFloat64(usd)
	cents.Mul(cents, big.NewFloat(100))

	whole, _ := cents.Int(nil)
	frac := new(big.Float).Sub(cents, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		whole.Add(whole, big.NewInt(1))
	}

	c := whole.Int64()
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}

func formatAllergens(allergens []string) string {
	if len(allergens) == 0 {
		return "None listed"
	}
	return strings.Join(allergens, ", ")
}
