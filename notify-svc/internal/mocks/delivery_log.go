package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// DeliveryLog is a testify mock of service.DeliveryLog.
type DeliveryLog struct {
	mock.Mock
}

func (_m *DeliveryLog) AlreadySent(ctx context.Context, notificationID string, chatID int64) (bool, error) {
	ret := _m.Called(ctx, notificationID, chatID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *DeliveryLog) MarkSent(ctx context.Context, notificationID string, chatID int64) error {
	ret := _m.Called(ctx, notificationID, chatID)
	return ret.Error(0)
}

func NewDeliveryLog(t interface {
	mock.TestingT
	Cleanup(func())
}) *DeliveryLog {
	m := &DeliveryLog{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
