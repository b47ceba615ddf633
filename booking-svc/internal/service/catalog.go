package service

import (
	"context"
	"strings"

	"cafe-assistant/booking-svc/internal/domain"
)

// Catalog exposes the active menu for browsing.
type Catalog struct {
	menu MenuRepository
}

func NewCatalog(menu MenuRepository) *Catalog {
	return &Catalog{menu: menu}
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	return c.menu.ListCategories(ctx)
}

func (c *Catalog) Items(ctx context.Context, category string) ([]domain.MenuItem, error) {
	return c.menu.ListMenuItems(ctx, strings.TrimSpace(category))
}
