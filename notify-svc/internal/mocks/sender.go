package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Sender is a testify mock of service.Sender.
type Sender struct {
	mock.Mock
}

func (_m *Sender) Send(ctx context.Context, chatID int64, text string) error {
	ret := _m.Called(ctx, chatID, text)
	return ret.Error(0)
}

func NewSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *Sender {
	m := &Sender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
