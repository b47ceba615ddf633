package mocks

import (
	"context"

	"cafe-assistant/booking-svc/internal/domain"
	"cafe-assistant/booking-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

// AdminServiceInterface is a testify mock of service.AdminServiceInterface.
type AdminServiceInterface struct {
	mock.Mock
}

func (_m *AdminServiceInterface) IsAdmin(actor service.Actor) bool {
	ret := _m.Called(actor)
	return ret.Bool(0)
}

func (_m *AdminServiceInterface) ActiveMenu(ctx context.Context, actor service.Actor) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, actor)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *AdminServiceInterface) SetPrice(ctx context.Context, actor service.Actor, itemID int64, priceText string) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, actor, itemID, priceText)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *AdminServiceInterface) RecentOrders(ctx context.Context, actor service.Actor) ([]domain.Order, error) {
	ret := _m.Called(ctx, actor)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *AdminServiceInterface) Order(ctx context.Context, actor service.Actor, id int64) (*domain.Order, error) {
	ret := _m.Called(ctx, actor, id)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *AdminServiceInterface) SetOrderStatus(ctx context.Context, actor service.Actor, id int64, status string) error {
	ret := _m.Called(ctx, actor, id, status)
	return ret.Error(0)
}

func (_m *AdminServiceInterface) RecentReservations(ctx context.Context, actor service.Actor) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, actor)
	var r0 []domain.Reservation
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *AdminServiceInterface) Reservation(ctx context.Context, actor service.Actor, id int64) (*domain.Reservation, error) {
	ret := _m.Called(ctx, actor, id)
	var r0 *domain.Reservation
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *AdminServiceInterface) SetReservationStatus(ctx context.Context, actor service.Actor, id int64, status string) error {
	ret := _m.Called(ctx, actor, id, status)
	return ret.Error(0)
}

func NewAdminServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AdminServiceInterface {
	m := &AdminServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
