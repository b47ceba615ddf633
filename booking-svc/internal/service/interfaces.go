package service

import (
	"context"

	"cafe-assistant/booking-svc/internal/domain"
)

type MenuRepository interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListMenuItems(ctx context.Context, category string) ([]domain.MenuItem, error)
	ListActiveMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	FindMenuItem(ctx context.Context, category, title string) (*domain.MenuItem, error)
	UpdateMenuItemPrice(ctx context.Context, id int64, priceCents int64) error
}

type TableRepository interface {
	ListTables(ctx context.Context, minSeats int) ([]domain.Table, error)
	GetTable(ctx context.Context, id int64) (*domain.Table, error)
}

type ReservationRepository interface {
	HasOverlap(ctx context.Context, tableID int64, window domain.Window) (bool, error)
	// CreateReservation re-checks the window and inserts under per-table
	// serialization; it returns domain.ErrSlotTaken on overlap.
	CreateReservation(ctx context.Context, reservation *domain.Reservation) error
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	ListRecentReservations(ctx context.Context, limit int) ([]domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

type OrderRepository interface {
	// CreateOrder persists the header and every line atomically.
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

type Store interface {
	MenuRepository
	TableRepository
	ReservationRepository
	OrderRepository
}

// SessionStore holds conversation state per user. Load returns domain.Idle{}
// for users without a stored session.
type SessionStore interface {
	Load(ctx context.Context, userID int64) (domain.Session, error)
	Save(ctx context.Context, userID int64, session domain.Session) error
	Clear(ctx context.Context, userID int64) error
}

type Notifier interface {
	Notify(ctx context.Context, recipients []int64, summary string) error
}

type AssistantInterface interface {
	Handle(ctx context.Context, intent domain.Intent) (*domain.Result, error)
}

type AdminServiceInterface interface {
	IsAdmin(actor Actor) bool
	ActiveMenu(ctx context.Context, actor Actor) ([]domain.MenuItem, error)
	SetPrice(ctx context.Context, actor Actor, itemID int64, priceText string) (*domain.MenuItem, error)
	RecentOrders(ctx context.Context, actor Actor) ([]domain.Order, error)
	Order(ctx context.Context, actor Actor, id int64) (*domain.Order, error)
	SetOrderStatus(ctx context.Context, actor Actor, id int64, status string) error
	RecentReservations(ctx context.Context, actor Actor) ([]domain.Reservation, error)
	Reservation(ctx context.Context, actor Actor, id int64) (*domain.Reservation, error)
	SetReservationStatus(ctx context.Context, actor Actor, id int64, status string) error
}

type CatalogInterface interface {
	Categories(ctx context.Context) ([]string, error)
	Items(ctx context.Context, category string) ([]domain.MenuItem, error)
}

var (
	_ AssistantInterface    = (*Assistant)(nil)
	_ AdminServiceInterface = (*AdminService)(nil)
	_ CatalogInterface      = (*Catalog)(nil)
)
