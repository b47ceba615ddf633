package mocks

import (
	"context"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// SessionStore is a testify mock of service.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (_m *SessionStore) Load(ctx context.Context, userID int64) (domain.Session, error) {
	ret := _m.Called(ctx, userID)
	var r0 domain.Session
	if v := ret.Get(0); v != nil {
		r0 = v.(domain.Session)
	}
	return r0, ret.Error(1)
}

func (_m *SessionStore) Save(ctx context.Context, userID int64, session domain.Session) error {
	ret := _m.Called(ctx, userID, session)
	return ret.Error(0)
}

func (_m *SessionStore) Clear(ctx context.Context, userID int64) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func NewSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
