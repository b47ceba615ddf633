package mocks

import (
	"context"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// AssistantInterface is a testify mock of service.AssistantInterface.
type AssistantInterface struct {
	mock.Mock
}

func (_m *AssistantInterface) Handle(ctx context.Context, intent domain.Intent) (*domain.Result, error) {
	ret := _m.Called(ctx, intent)
	var r0 *domain.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Result)
	}
	return r0, ret.Error(1)
}

func NewAssistantInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AssistantInterface {
	m := &AssistantInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
