package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/Lixing-Zhang/menu-assistant/internal/models"
)

var (
	ErrItemNotFound = errors.New("menu item not found")
)

// MenuRepository defines the interface for menu data access
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Count() int
}

// InMemoryMenuRepository implements MenuRepository over a fixed, ordered item list.
// The list is never mutated after construction, so reads need no locking.
type InMemoryMenuRepository struct {
	items []models.MenuItem
	byID  map[string]int
}

// NewInMemoryMenuRepository creates a repository holding a copy of items in the given order
func NewInMemoryMenuRepository(items []models.MenuItem) *InMemoryMenuRepository {
	owned := make([]models.MenuItem, len(items))
	for i, item := range items {
		item.Allergens = slices.Clone(item.Allergens)
		item.Tags = slices.Clone(item.Tags)
		owned[i] = item
	}

	byID := make(map[string]int, len(owned))
	for i, item := range owned {
		byID[item.ID] = i
	}

	return &InMemoryMenuRepository{
		items: owned,
		byID:  byID,
	}
}

// GetAll returns a copy of all menu items in collection order
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	return slices.Clone(r.items), nil
}

// GetByID returns a menu item by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	idx, exists := r.byID[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	item := r.items[idx]
	return &item, nil
}

// Count returns the number of loaded items
func (r *InMemoryMenuRepository) Count() int {
	return len(r.items)
}
