package service

import (
	"context"
	"errors"
	"fmt"

	"cafe-assistant/booking-svc/internal/domain"
)

// PriceCart resolves every cart line against the current menu. Lines whose
// item is gone or inactive are reported in Missing and excluded from the total.
func PriceCart(ctx context.Context, menu MenuRepository, cart domain.Cart) (*domain.CartView, error) {
	view := &domain.CartView{Lines: []domain.CartLine{}}
	for _, id := range cart.ItemIDs() {
		qty := cart[id]
		if qty <= 0 {
			continue
		}
		item, err := menu.GetMenuItem(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			view.Missing = append(view.Missing, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to price cart item %d: %w", id, err)
		}
		if !item.IsActive {
			view.Missing = append(view.Missing, id)
			continue
		}
		line := domain.CartLine{Item: *item, Qty: qty, LineTotalCents: item.PriceCents * int64(qty)}
		view.TotalCents += line.LineTotalCents
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}
