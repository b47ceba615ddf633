package domain

import "time"

// ReservationDuration is the fixed length of every booking window.
const ReservationDuration = 2*time.Hour + 15*time.Minute

type MenuItem struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	IsActive    bool   `json:"is_active"`
}

type Table struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Seats    int    `json:"seats"`
	Zone     string `json:"zone"`
	IsActive bool   `json:"is_active"`
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationNoShow    ReservationStatus = "no_show"
	ReservationCanceled  ReservationStatus = "canceled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated, ReservationNoShow, ReservationCanceled:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status occupies its table.
func (s ReservationStatus) Blocking() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// BlockingReservationStatuses lists the statuses that take part in overlap checks.
var BlockingReservationStatuses = []string{string(ReservationPending), string(ReservationConfirmed)}

type Reservation struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	TableID   int64             `json:"table_id"`
	TableCode string            `json:"table_code,omitempty"`
	StartAt   time.Time         `json:"start_at"`
	EndAt     time.Time         `json:"end_at"`
	Guests    int               `json:"guests"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r Reservation) Window() Window {
	return Window{Start: r.StartAt, End: r.EndAt}
}

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow derives the booking window that begins at start.
func NewWindow(start time.Time) Window {
	return Window{Start: start, End: start.Add(ReservationDuration)}
}

// Overlaps treats touching endpoints as free.
func (w Window) Overlaps(other Window) bool {
	return !(!other.End.After(w.Start) || !other.Start.Before(w.End))
}

type OrderType string

const (
	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"
)

func (t OrderType) Valid() bool {
	return t == OrderDelivery || t == OrderPickup
}

type OrderStatus string

const (
	OrderNew      OrderStatus = "new"
	OrderCooking  OrderStatus = "cooking"
	OrderReady    OrderStatus = "ready"
	OrderCourier  OrderStatus = "courier"
	OrderDone     OrderStatus = "done"
	OrderCanceled OrderStatus = "canceled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderNew, OrderCooking, OrderReady, OrderCourier, OrderDone, OrderCanceled:
		return true
	}
	return false
}

type Order struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	Type         OrderType   `json:"type"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	ScheduledFor *time.Time  `json:"scheduled_for,omitempty"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address,omitempty"`
	Comment      string      `json:"comment"`
	TotalCents   int64       `json:"total_cents"`
	Lines        []OrderLine `json:"lines,omitempty"`
}

// OrderLine keeps the unit price captured when the order was committed.
type OrderLine struct {
	MenuItemID     int64  `json:"menu_item_id"`
	Title          string `json:"title"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Comment        string `json:"comment,omitempty"`
}

func (l OrderLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Qty)
}

// SumLines is the order total over captured unit prices.
func SumLines(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.TotalCents()
	}
	return total
}
