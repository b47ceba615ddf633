package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Notifier is a testify mock of service.Notifier.
type Notifier struct {
	mock.Mock
}

func (_m *Notifier) Notify(ctx context.Context, recipients []int64, summary string) error {
	ret := _m.Called(ctx, recipients, summary)
	return ret.Error(0)
}

func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
