package mocks

import (
	"context"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CatalogInterface is a testify mock of service.CatalogInterface.
type CatalogInterface struct {
	mock.Mock
}

func (_m *CatalogInterface) Categories(ctx context.Context) ([]string, error) {
	ret := _m.Called(ctx)
	var r0 []string
	if v := ret.Get(0); v != nil {
		r0 = v.([]string)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogInterface) Items(ctx context.Context, category string) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, category)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func NewCatalogInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogInterface {
	m := &CatalogInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
