package service

import (
	"context"

	"github.com/Lixing-Zhang/menu-assistant/internal/agent"
	"github.com/Lixing-Zhang/menu-assistant/internal/models"
	"github.com/Lixing-Zhang/menu-assistant/internal/repository"
)

// MenuService handles read access to the menu
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// ListItems returns all menu items in collection order
func (s *MenuService) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.GetAll(ctx)
}

// ListByCategory returns the items matching a category label
func (s *MenuService) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return agent.ListByCategory(category, items), nil
}

// GetItem returns a menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct item categories in first-seen order.
// Labels differing only in case or punctuation count once.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, item := range items {
		key := agent.Normalize(item.Category)
		if !seen[key] {
			seen[key] = true
			categories = append(categories, item.Category)
		}
	}
	return categories, nil
}

// ItemCount returns the number of items on the menu
func (s *MenuService) ItemCount() int {
	return s.repo.Count()
}
