package tests

import (
	"context"
	"strings"
	"testing"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.True(t, f.admin.IsAdmin(service.Actor{UserID: 1}))
	assert.True(t, f.admin.IsAdmin(service.Actor{UserID: 77, ChatID: -500}))
	assert.False(t, f.admin.IsAdmin(service.Actor{UserID: 77, ChatID: 77}))

	_, err := f.admin.SetPrice(ctx, service.Actor{UserID: 77}, f.steak.ID, "100")
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = f.admin.RecentOrders(ctx, service.Actor{UserID: 77})
	assert.ErrorIs(t, err, service.ErrForbidden)
	err = f.admin.SetReservationStatus(ctx, service.Actor{}, 1, "confirmed")
	assert.ErrorIs(t, err, service.ErrForbidden)

	item, err := f.store.GetMenuItem(ctx, f.steak.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(93000), item.PriceCents)
}

func TestAdmin_SetPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := service.Actor{ChatID: -500}

	item, err := f.admin.SetPrice(ctx, admin, f.steak.ID, "950,50 ₽")
	require.NoError(t, err)
	assert.Equal(t, int64(95050), item.PriceCents)

	_, err = f.admin.SetPrice(ctx, admin, f.steak.ID, "free")
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
	_, err = f.admin.SetPrice(ctx, admin, f.steak.ID, "0")
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
	_, err = f.admin.SetPrice(ctx, admin, 999, "100")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdmin_ReservationStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := service.Actor{UserID: 1}

	f.bookUntilPhone(t, 71, "2", f.small)
	res := f.text(t, 71, "+79990001122")
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	resID := res.Reservation.ID

	err := f.admin.SetReservationStatus(ctx, admin, resID, "booked")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	require.NoError(t, f.admin.SetReservationStatus(ctx, admin, resID, " Confirmed "))
	list, err := f.admin.RecentReservations(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ReservationConfirmed, list[0].Status)

	detail, err := f.admin.Reservation(ctx, admin, resID)
	require.NoError(t, err)
	assert.Equal(t, "T1", detail.TableCode)
	assert.Equal(t, "Anna", detail.Name)
	assert.Equal(t, domain.ReservationConfirmed, detail.Status)

	_, err = f.admin.Reservation(ctx, service.Actor{UserID: 77}, resID)
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = f.admin.Reservation(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.admin.SetReservationStatus(ctx, admin, resID, "canceled"))
	f.bookUntilPhone(t, 72, "2", f.small)
	res = f.text(t, 72, "+79990003344")
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)

	err = f.admin.SetReservationStatus(ctx, admin, resID, "pending")
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
}

func TestAdmin_Orders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := service.Actor{UserID: 1}

	res := f.send(t, domain.SubmitIntent(73, domain.OrderSubmission{
		Type:  domain.OrderPickup,
		Name:  "Ivan",
		Phone: "+79990001122",
		Items: []domain.SubmissionItem{{Category: "Напитки", Title: "Морс", Qty: 1}},
	}))
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)

	orders, err := f.admin.RecentOrders(ctx, admin)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, "Морс", orders[0].Lines[0].Title)

	require.NoError(t, f.admin.SetOrderStatus(ctx, admin, res.Order.ID, "cooking"))
	order, err := f.admin.Order(ctx, admin, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCooking, order.Status)

	assert.ErrorIs(t, f.admin.SetOrderStatus(ctx, admin, res.Order.ID, "lost"), service.ErrInvalidStatus)
	assert.ErrorIs(t, f.admin.SetOrderStatus(ctx, admin, 999, "done"), domain.ErrNotFound)

	_, err = f.admin.Order(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummaries(t *testing.T) {
	f := newFixture(t)

	res := f.send(t, domain.SubmitIntent(74, domain.OrderSubmission{
		Type:    domain.OrderDelivery,
		Name:    "Ivan",
		Phone:   "+79990001122",
		Address: "Lenina 10, apt 5",
		Items: []domain.SubmissionItem{
			{Category: "Напитки", Title: "Морс", Qty: 2},
			{Category: "Закуски", Title: "Страчателла", Qty: 1},
		},
	}))
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)

	summary := service.OrderSummary(res.Order)
	assert.Contains(t, summary, "Type: delivery")
	assert.Contains(t, summary, "When: asap")
	assert.Contains(t, summary, "Address: Lenina 10, apt 5")
	assert.Contains(t, summary, "Морс × 2 = 320 ₽")
	assert.Contains(t, summary, "Total: 770 ₽")
	assert.Contains(t, summary, "Comment: -")

	f.bookUntilPhone(t, 75, "2", f.small)
	res = f.text(t, 75, "+79990001122")
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	summary = service.ReservationSummary(res.Reservation)
	assert.True(t, strings.HasPrefix(summary, "🪑 New reservation #"))
	assert.Contains(t, summary, "Date/time: 2026-06-02 19:00")
	assert.Contains(t, summary, "Table: T1")
	assert.Contains(t, summary, "Guests: 2")
}
