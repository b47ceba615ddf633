package tests

import (
	"context"
	"strconv"
	"testing"
	"time"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/mocks"
	"cafe-assistant/booking-svc/internal/service"
	"cafe-assistant/booking-svc/internal/storage"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const operatorChat int64 = 100

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store      *storage.MemoryStore
	sessions   *storage.MemorySessionStore
	notifier   *mocks.Notifier
	dispatcher *service.Dispatcher
	checkout   *service.Checkout
	assistant  *service.Assistant
	admin      *service.AdminService

	small domain.Table
	large domain.Table
	steak domain.MenuItem
	juice domain.MenuItem
	salad domain.MenuItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    storage.NewMemoryStore(),
		sessions: storage.NewMemorySessionStore(),
		notifier: mocks.NewNotifier(t),
	}
	f.notifier.On("Notify", mock.Anything, []int64{operatorChat}, mock.Anything).Return(nil).Maybe()

	f.small = f.store.AddTable(domain.Table{Code: "T1", Seats: 2, Zone: "main", IsActive: true})
	f.large = f.store.AddTable(domain.Table{Code: "T2", Seats: 4, Zone: "main", IsActive: true})

	f.steak = f.store.AddMenuItem(domain.MenuItem{Category: "Основные блюда", Title: "Гриль стейк", PriceCents: 93000, IsActive: true})
	f.salad = f.store.AddMenuItem(domain.MenuItem{Category: "Закуски", Title: "Страчателла", PriceCents: 45000, IsActive: true})
	f.juice = f.store.AddMenuItem(domain.MenuItem{Category: "Напитки", Title: "Морс", PriceCents: 16000, IsActive: true})

	now := func() time.Time { return fixedNow }
	f.dispatcher = service.NewDispatcher(f.notifier, []int64{operatorChat})
	t.Cleanup(f.dispatcher.Wait)
	f.checkout = service.NewCheckout(f.store, f.dispatcher, now)
	f.assistant = service.NewAssistant(f.store, f.sessions, f.checkout, now)
	f.admin = service.NewAdminService(f.store, []int64{1}, -500)
	return f
}

func (f *fixture) send(t *testing.T, intent domain.Intent) *domain.Result {
	t.Helper()
	result, err := f.assistant.Handle(context.Background(), intent)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func (f *fixture) text(t *testing.T, userID int64, text string) *domain.Result {
	t.Helper()
	return f.send(t, domain.TextIntent(userID, text))
}

func (f *fixture) pick(t *testing.T, userID int64, action domain.Action, value string) *domain.Result {
	t.Helper()
	return f.send(t, domain.SelectIntent(userID, action, value))
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// bookUntilPhone walks a user through the reservation flow up to the phone step.
func (f *fixture) bookUntilPhone(t *testing.T, userID int64, guests string, table domain.Table) {
	t.Helper()
	f.pick(t, userID, domain.ActionStartReservation, "")
	f.text(t, userID, "tomorrow")
	f.text(t, userID, "19:00")
	f.text(t, userID, guests)
	res := f.pick(t, userID, domain.ActionChooseTable, id(table.ID))
	require.Equal(t, domain.OutcomePrompt, res.Outcome)
	f.text(t, userID, "Anna")
}

func tomorrowAt(hour, minute int) time.Time {
	return time.Date(2026, 6, 2, hour, minute, 0, 0, time.UTC)
}
