package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/mocks"
	"cafe-assistant/booking-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockedAssistant(t *testing.T) (*fixture, *mocks.SessionStore, *service.Assistant) {
	f := newFixture(t)
	sessions := mocks.NewSessionStore(t)
	assistant := service.NewAssistant(f.store, sessions, f.checkout, func() time.Time { return fixedNow })
	return f, sessions, assistant
}

func TestHandle_LoadFailure(t *testing.T) {
	_, sessions, assistant := newMockedAssistant(t)
	sessions.On("Load", mock.Anything, int64(61)).Return(nil, errors.New("redis down"))

	res, err := assistant.Handle(context.Background(), domain.TextIntent(61, "hi"))
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestHandle_SaveFailureIsReported(t *testing.T) {
	_, sessions, assistant := newMockedAssistant(t)
	sessions.On("Load", mock.Anything, int64(62)).Return(domain.Idle{}, nil)
	sessions.On("Save", mock.Anything, int64(62), mock.Anything).Return(errors.New("redis down"))

	res, err := assistant.Handle(context.Background(), domain.SelectIntent(62, domain.ActionStartOrder, ""))
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestHandle_ClearFailureAfterCommitIsTolerated(t *testing.T) {
	f, sessions, assistant := newMockedAssistant(t)
	flow := domain.OrderFlow{
		Step: domain.AwaitingComment,
		Draft: domain.OrderDraft{
			Type:    domain.OrderPickup,
			Cart:    domain.Cart{f.juice.ID: 1},
			WhenSet: true,
			Name:    "Ivan",
			Phone:   "+79990001122",
		},
	}
	sessions.On("Load", mock.Anything, int64(63)).Return(flow, nil)
	sessions.On("Clear", mock.Anything, int64(63)).Return(errors.New("redis down"))

	res, err := assistant.Handle(context.Background(), domain.TextIntent(63, "-"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCommitted, res.Outcome)

	orders, err := f.store.ListRecentOrders(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
