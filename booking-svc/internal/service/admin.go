package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cafe-assistant/booking-svc/internal/domain"
)

const recentLimit = 20

var (
	ErrForbidden     = errors.New("admin access required")
	ErrInvalidPrice  = errors.New("invalid price")
	ErrInvalidStatus = errors.New("invalid status")
)

// Actor identifies who issues an admin command: the user and the chat it
// came from.
type Actor struct {
	UserID int64
	ChatID int64
}

// AdminService gates every operation on the configured admin users and the
// admin chat.
type AdminService struct {
	store       Store
	adminUsers  map[int64]bool
	adminChatID int64
}

func NewAdminService(store Store, adminUserIDs []int64, adminChatID int64) *AdminService {
	users := make(map[int64]bool, len(adminUserIDs))
	for _, id := range adminUserIDs {
		users[id] = true
	}
	return &AdminService{store: store, adminUsers: users, adminChatID: adminChatID}
}

func (s *AdminService) IsAdmin(actor Actor) bool {
	if actor.UserID != 0 && s.adminUsers[actor.UserID] {
		return true
	}
	return s.adminChatID != 0 && actor.ChatID == s.adminChatID
}

func (s *AdminService) ActiveMenu(ctx context.Context, actor Actor) ([]domain.MenuItem, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	return s.store.ListActiveMenuItems(ctx)
}

// SetPrice affects only orders committed afterwards; stored lines keep their
// frozen unit price.
func (s *AdminService) SetPrice(ctx context.Context, actor Actor, itemID int64, priceText string) (*domain.MenuItem, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	cents, ok := ParsePrice(priceText)
	if !ok {
		return nil, ErrInvalidPrice
	}
	if err := s.store.UpdateMenuItemPrice(ctx, itemID, cents); err != nil {
		return nil, err
	}
	item, err := s.store.GetMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	log.Printf("Admin %d set price of item %d to %s", actor.UserID, itemID, FormatPrice(cents))
	return item, nil
}

func (s *AdminService) RecentOrders(ctx context.Context, actor Actor) ([]domain.Order, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	return s.store.ListRecentOrders(ctx, recentLimit)
}

func (s *AdminService) Order(ctx context.Context, actor Actor, id int64) (*domain.Order, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	return s.store.GetOrder(ctx, id)
}

func (s *AdminService) SetOrderStatus(ctx context.Context, actor Actor, id int64, status string) error {
	if !s.IsAdmin(actor) {
		return ErrForbidden
	}
	next := domain.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.store.UpdateOrderStatus(ctx, id, next); err != nil {
		return err
	}
	log.Printf("Admin %d moved order %d to %s", actor.UserID, id, next)
	return nil
}

func (s *AdminService) RecentReservations(ctx context.Context, actor Actor) ([]domain.Reservation, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	return s.store.ListRecentReservations(ctx, recentLimit)
}

func (s *AdminService) Reservation(ctx context.Context, actor Actor, id int64) (*domain.Reservation, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	return s.store.GetReservation(ctx, id)
}

func (s *AdminService) SetReservationStatus(ctx context.Context, actor Actor, id int64, status string) error {
	if !s.IsAdmin(actor) {
		return ErrForbidden
	}
	next := domain.ReservationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.store.UpdateReservationStatus(ctx, id, next); err != nil {
		return err
	}
	log.Printf("Admin %d moved reservation %d to %s", actor.UserID, id, next)
	return nil
}
