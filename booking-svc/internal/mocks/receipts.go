package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ReceiptServiceInterface is a testify mock of service.ReceiptServiceInterface.
type ReceiptServiceInterface struct {
	mock.Mock
}

func (_m *ReceiptServiceInterface) OrderQRCode(ctx context.Context, orderID int64) ([]byte, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *ReceiptServiceInterface) ReservationQRCode(ctx context.Context, reservationID int64) ([]byte, error) {
	ret := _m.Called(ctx, reservationID)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func NewReceiptServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReceiptServiceInterface {
	m := &ReceiptServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
