package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/mocks"
	"cafe-assistant/booking-svc/internal/service"
	"cafe-assistant/booking-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("postgres down")

// flakyStore fails the named calls until they are healed.
type flakyStore struct {
	*storage.MemoryStore

	mu       sync.Mutex
	failures map[string]error
}

func (s *flakyStore) fail(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

func (s *flakyStore) heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]error{}
}

func (s *flakyStore) failure(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[method]
}

func (s *flakyStore) HasOverlap(ctx context.Context, tableID int64, window domain.Window) (bool, error) {
	if err := s.failure("HasOverlap"); err != nil {
		return false, err
	}
	return s.MemoryStore.HasOverlap(ctx, tableID, window)
}

func (s *flakyStore) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	if err := s.failure("GetMenuItem"); err != nil {
		return nil, err
	}
	return s.MemoryStore.GetMenuItem(ctx, id)
}

func (s *flakyStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := s.failure("CreateOrder"); err != nil {
		return err
	}
	return s.MemoryStore.CreateOrder(ctx, order)
}

// newFlakyFixture rewires the fixture's assistant over a store that can be
// made to fail.
func newFlakyFixture(t *testing.T) (*fixture, *flakyStore) {
	f := newFixture(t)
	store := &flakyStore{MemoryStore: f.store, failures: map[string]error{}}
	now := func() time.Time { return fixedNow }
	f.checkout = service.NewCheckout(store, f.dispatcher, now)
	f.assistant = service.NewAssistant(store, f.sessions, f.checkout, now)
	return f, store
}

func loadSession(t *testing.T, f *fixture, userID int64) domain.Session {
	t.Helper()
	session, err := f.sessions.Load(context.Background(), userID)
	require.NoError(t, err)
	return session
}

func TestHandle_StoreFailureKeepsReservationStep(t *testing.T) {
	f, store := newFlakyFixture(t)
	ctx := context.Background()
	const user int64 = 81

	f.pick(t, user, domain.ActionStartReservation, "")
	f.text(t, user, "tomorrow")
	f.text(t, user, "19:00")

	store.fail("HasOverlap", errStoreDown)
	res, err := f.assistant.Handle(ctx, domain.TextIntent(user, "2"))
	assert.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, res)

	flow, ok := loadSession(t, f, user).(domain.ReservationFlow)
	require.True(t, ok)
	assert.Equal(t, domain.AwaitingPartySize, flow.Step)
	assert.True(t, tomorrowAt(19, 0).Equal(flow.Draft.StartAt))

	store.heal()
	res = f.text(t, user, "2")
	assert.Equal(t, string(domain.AwaitingTableChoice), res.Step)
	assert.Len(t, res.Tables, 2)
}

func TestHandle_StoreFailureKeepsOrderStep(t *testing.T) {
	tests := []struct {
		name   string
		method string
		step   domain.OrderStep
		intent func(f *fixture, userID int64) domain.Intent
	}{
		{
			name:   "cart_inc",
			method: "GetMenuItem",
			step:   domain.Browsing,
			intent: func(f *fixture, userID int64) domain.Intent {
				return domain.SelectIntent(userID, domain.ActionCartInc, id(f.salad.ID))
			},
		},
		{
			name:   "commit",
			method: "CreateOrder",
			step:   domain.AwaitingComment,
			intent: func(_ *fixture, userID int64) domain.Intent {
				return domain.TextIntent(userID, "-")
			},
		},
	}

	for i, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f, store := newFlakyFixture(t)
			ctx := context.Background()
			userID := int64(82 + i)

			f.pick(t, userID, domain.ActionStartOrder, "")
			f.pick(t, userID, domain.ActionOrderType, "pickup")
			f.pick(t, userID, domain.ActionCartInc, id(f.juice.ID))
			if testCase.step == domain.AwaitingComment {
				f.pick(t, userID, domain.ActionCartView, "")
				f.text(t, userID, "now")
				f.text(t, userID, "Ivan")
				res := f.text(t, userID, "+79990001122")
				require.Equal(t, string(domain.AwaitingComment), res.Step)
			}
			before := loadSession(t, f, userID)

			store.fail(testCase.method, errStoreDown)
			res, err := f.assistant.Handle(ctx, testCase.intent(f, userID))
			assert.ErrorIs(t, err, errStoreDown)
			assert.Nil(t, res)

			after := loadSession(t, f, userID)
			assert.Equal(t, before, after)
			flow, ok := after.(domain.OrderFlow)
			require.True(t, ok)
			assert.Equal(t, testCase.step, flow.Step)

			orders, err := f.store.ListRecentOrders(ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, orders)

			store.heal()
			res = f.send(t, testCase.intent(f, userID))
			if testCase.step == domain.AwaitingComment {
				assert.Equal(t, domain.OutcomeCommitted, res.Outcome)
			} else {
				require.NotNil(t, res.Cart)
				assert.Len(t, res.Cart.Lines, 2)
			}
		})
	}
}

func TestCheckout_NotifierFailureDoesNotUndoCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, []int64{operatorChat}, mock.Anything).
		Return(errors.New("kafka down")).Twice()
	dispatcher := service.NewDispatcher(notifier, []int64{operatorChat})
	now := func() time.Time { return fixedNow }
	f.dispatcher = dispatcher
	f.checkout = service.NewCheckout(f.store, dispatcher, now)
	f.assistant = service.NewAssistant(f.store, f.sessions, f.checkout, now)

	f.bookUntilPhone(t, 85, "2", f.small)
	res := f.text(t, 85, "+79990001122")
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	require.NotNil(t, res.Reservation)

	res = f.send(t, domain.SubmitIntent(86, domain.OrderSubmission{
		Type:  domain.OrderPickup,
		Name:  "Ivan",
		Phone: "+79990003344",
		Items: []domain.SubmissionItem{{Category: "Напитки", Title: "Морс", Qty: 2}},
	}))
	require.Equal(t, domain.OutcomeCommitted, res.Outcome)
	require.NotNil(t, res.Order)

	dispatcher.Wait()

	reservations, err := f.store.ListRecentReservations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, domain.ReservationPending, reservations[0].Status)

	order, err := f.store.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(32000), order.TotalCents)

	assert.Equal(t, domain.FlowIdle, loadSession(t, f, 85).Flow())
	assert.Equal(t, domain.FlowIdle, loadSession(t, f, 86).Flow())
}
