package tests

import (
	"context"
	"testing"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_CommitsResolvableLines(t *testing.T) {
	f := newFixture(t)
	const user int64 = 51

	res := f.send(t, domain.SubmitIntent(user, domain.OrderSubmission{
		Type:    domain.OrderDelivery,
		Name:    "Ivan",
		Phone:   "+79990001122",
		Address: "Lenina 10, apt 5",
		Items: []domain.SubmissionItem{
			{Category: "Основные блюда", Title: "Гриль стейк", Qty: 2},
			{Category: "Основные блюда", Title: "Гриль стейк", Qty: 1},
			{Category: "Десерты", Title: "Тирамису", Qty: 1},
			{Category: "Напитки", Title: "Морс", Qty: 0},
			{Category: "Закуски", Title: "Страчателла", Qty: 500},
		},
	}))

	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	assert.Equal(t, domain.FlowIdle, res.Flow)
	require.Len(t, res.Order.Lines, 1)
	assert.Equal(t, 3, res.Order.Lines[0].Qty)
	assert.Equal(t, int64(279000), res.Order.TotalCents)
	assert.Nil(t, res.Order.ScheduledFor)

	f.dispatcher.Wait()
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestSubmission_NothingResolvableChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const user int64 = 52

	f.pick(t, user, domain.ActionStartReservation, "")
	f.text(t, user, "tomorrow")

	res := f.send(t, domain.SubmitIntent(user, domain.OrderSubmission{
		Type:  domain.OrderPickup,
		Name:  "Ivan",
		Phone: "+79990001122",
		Items: []domain.SubmissionItem{{Category: "Десерты", Title: "Тирамису", Qty: 1}},
	}))
	assert.Equal(t, domain.OutcomeEmpty, res.Outcome)
	assert.Equal(t, domain.ReasonUnresolvableCart, res.Reason)
	assert.Equal(t, domain.FlowReservation, res.Flow)
	assert.Equal(t, string(domain.AwaitingTime), res.Step)

	orders, err := f.store.ListRecentOrders(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSubmission_InactiveItemIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.store.SetMenuItemActive(f.juice.ID, false)

	res := f.send(t, domain.SubmitIntent(53, domain.OrderSubmission{
		Type:  domain.OrderPickup,
		Name:  "Ivan",
		Phone: "+79990001122",
		Items: []domain.SubmissionItem{{Category: "Напитки", Title: "Морс", Qty: 1}},
	}))
	assert.Equal(t, domain.ReasonUnresolvableCart, res.Reason)
}

func TestSubmission_MissingPhoneSeedsFlow(t *testing.T) {
	f := newFixture(t)
	const user int64 = 54

	res := f.send(t, domain.SubmitIntent(user, domain.OrderSubmission{
		Type:  domain.OrderPickup,
		Name:  "Ivan",
		Items: []domain.SubmissionItem{{Category: "Напитки", Title: "Морс", Qty: 2}},
	}))
	assert.Equal(t, domain.OutcomePrompt, res.Outcome)
	assert.Equal(t, domain.FlowOrder, res.Flow)
	assert.Equal(t, string(domain.ChoosingWhen), res.Step)
	require.NotNil(t, res.Cart)
	assert.Equal(t, int64(32000), res.Cart.TotalCents)

	res = f.text(t, user, "now")
	assert.Equal(t, string(domain.AwaitingPhone), res.Step)
	f.text(t, user, "+79990001122")
	res = f.text(t, user, "-")
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	assert.Equal(t, "Ivan", res.Order.Name)
	assert.Equal(t, domain.OrderPickup, res.Order.Type)
}

func TestSubmission_MissingTypeAsksForIt(t *testing.T) {
	f := newFixture(t)
	const user int64 = 55

	res := f.send(t, domain.SubmitIntent(user, domain.OrderSubmission{
		Name:  "Ivan",
		Phone: "+79990001122",
		Items: []domain.SubmissionItem{{Category: " Напитки ", Title: "Морс", Qty: 1}},
	}))
	assert.Equal(t, string(domain.ChoosingType), res.Step)

	res = f.text(t, user, "pickup")
	assert.Equal(t, string(domain.Browsing), res.Step)
	require.NotNil(t, res.Cart)
	assert.Len(t, res.Cart.Lines, 1)
}

func TestSubmission_BadInput(t *testing.T) {
	f := newFixture(t)

	res := f.send(t, domain.Intent{UserID: 56, Kind: domain.IntentSubmit})
	assert.Equal(t, domain.ReasonBadSubmission, res.Reason)

	res = f.send(t, domain.SubmitIntent(56, domain.OrderSubmission{
		Type:  "teleport",
		Items: []domain.SubmissionItem{{Category: "Напитки", Title: "Морс", Qty: 1}},
	}))
	assert.Equal(t, domain.ReasonInvalidOrderType, res.Reason)
	assert.Equal(t, domain.FlowIdle, res.Flow)
}

func TestSubmission_DashCommentMeansNone(t *testing.T) {
	f := newFixture(t)

	res := f.send(t, domain.SubmitIntent(57, domain.OrderSubmission{
		Type:    domain.OrderPickup,
		Name:    "Ivan",
		Phone:   "+79990001122",
		Comment: " - ",
		Items:   []domain.SubmissionItem{{Category: "Напитки", Title: "Морс", Qty: 1}},
	}))
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	assert.Equal(t, "", res.Order.Comment)

	stored, err := f.store.GetOrder(context.Background(), res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Comment)
}
