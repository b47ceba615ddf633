package mocks

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MessageReader is a testify mock of service.MessageReader.
type MessageReader struct {
	mock.Mock
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	var r0 kafka.Message
	if v := ret.Get(0); v != nil {
		r0 = v.(kafka.Message)
	}
	return r0, ret.Error(1)
}

func NewMessageReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
