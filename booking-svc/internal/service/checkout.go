package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cafe-assistant/booking-svc/internal/domain"
)

// Checkout turns completed drafts into durable records and emits an operator
// notification after each successful commit.
type Checkout struct {
	store         Store
	notifications *Dispatcher
	now           func() time.Time
}

func NewCheckout(store Store, notifications *Dispatcher, now func() time.Time) *Checkout {
	if now == nil {
		now = time.Now
	}
	return &Checkout{store: store, notifications: notifications, now: now}
}

// CommitReservation inserts a pending reservation. The store re-checks the
// window under per-table serialization and returns domain.ErrSlotTaken when
// another booking won the race.
func (c *Checkout) CommitReservation(ctx context.Context, userID int64, draft domain.ReservationDraft) (*domain.Reservation, error) {
	if draft.TableID == 0 || draft.StartAt.IsZero() || draft.Guests <= 0 {
		return nil, fmt.Errorf("incomplete reservation draft")
	}
	window := draft.Window()
	reservation := &domain.Reservation{
		UserID:    userID,
		TableID:   draft.TableID,
		TableCode: draft.TableCode,
		StartAt:   window.Start,
		EndAt:     window.End,
		Guests:    draft.Guests,
		Name:      draft.Name,
		Phone:     draft.Phone,
		Status:    domain.ReservationPending,
		CreatedAt: c.now(),
	}

	if err := c.store.CreateReservation(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	log.Printf("Reservation %d created: table %d at %s for user %d",
		reservation.ID, reservation.TableID, reservation.StartAt.Format(dateTimeLayout), userID)
	c.notifications.Dispatch(ReservationSummary(reservation))
	return reservation, nil
}

// CommitOrder prices every line from the store at this moment, freezes the
// unit prices into the order lines and persists header and lines together.
func (c *Checkout) CommitOrder(ctx context.Context, userID int64, draft domain.OrderDraft) (*domain.Order, error) {
	if draft.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	view, err := PriceCart(ctx, c.store, draft.Cart)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	orderType := draft.Type
	if !orderType.Valid() {
		orderType = domain.OrderPickup
	}
	order := &domain.Order{
		UserID:       userID,
		Type:         orderType,
		Status:       domain.OrderNew,
		CreatedAt:    c.now(),
		ScheduledFor: draft.ScheduledFor,
		Name:         draft.Name,
		Phone:        draft.Phone,
		Comment:      draft.Comment,
	}
	if orderType == domain.OrderDelivery {
		order.Address = draft.Address
	}
	for _, line := range view.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			MenuItemID:     line.Item.ID,
			Title:          line.Item.Title,
			Qty:            line.Qty,
			UnitPriceCents: line.Item.PriceCents,
		})
	}
	order.TotalCents = domain.SumLines(order.Lines)

	if err := c.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Printf("Order %d created: %s, %d lines, total %d for user %d",
		order.ID, order.Type, len(order.Lines), order.TotalCents, userID)
	c.notifications.Dispatch(OrderSummary(order))
	return order, nil
}
