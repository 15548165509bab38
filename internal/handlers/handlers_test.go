package handlers

import (
	"context"
	"testing"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/Lixing-Zhang/menu-assistant/internal/repository"
	"github.com/Lixing-Zhang/menu-assistant/internal/service"
)

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "big-mac", Name: "Big Mac", Category: "Burgers", Calories: 550, PriceUSD: 5.69, Allergens: []string{"Wheat", "Milk"}},
		{ID: "qpc", Name: "Quarter Pounder with Cheese", Category: "Burgers", Calories: 520, PriceUSD: 6.49, Allergens: []string{"Wheat", "Milk"}},
		{ID: "mcchicken", Name: "McChicken", Category: "Chicken", Calories: 400, PriceUSD: 2.99, Allergens: []string{"Wheat"}},
		{ID: "egg-mcmuffin", Name: "Egg McMuffin", Category: "Breakfast", Calories: 310, PriceUSD: 4.29, Allergens: []string{"Egg"}},
		{ID: "apple-pie", Name: "Baked Apple Pie", Category: "Desserts", Calories: 230, PriceUSD: 1.59, Allergens: []string{"Wheat"}},
		{ID: "latte", Name: "Caramel Latte", Category: "Drinks", Calories: 250, PriceUSD: 3.29, Allergens: []string{"Milk"}},
	}
}

func newTestRepo() *repository.InMemoryMenuRepository {
	return repository.NewInMemoryMenuRepository(testMenu())
}

func newTestChatService(t *testing.T) *service.ChatService {
	t.Helper()

	svc, err := service.NewChatService(context.Background(), newTestRepo(), agent.DefaultLinks(), testLogger())
	if err != nil {
		t.Fatalf("failed to create chat service: %v", err)
	}
	return svc
}
