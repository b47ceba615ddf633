package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/lib/pq"
)

// exclusion_violation, raised by reservations_no_overlap.
const pqExclusionViolation = "23P01"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Menu

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT category FROM menu_items
		WHERE is_active
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Category, &it.Title, &it.Description, &it.PriceCents, &it.IsActive); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, category string) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx, `
		SELECT id, category, title, description, price_cents, is_active
		FROM menu_items
		WHERE category = $1 AND is_active
		ORDER BY id
	`, category)
}

func (r *PostgresRepository) ListActiveMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx, `
		SELECT id, category, title, description, price_cents, is_active
		FROM menu_items
		WHERE is_active
		ORDER BY category, id
	`)
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var it domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, category, title, description, price_cents, is_active
		FROM menu_items WHERE id = $1
	`, id).Scan(&it.ID, &it.Category, &it.Title, &it.Description, &it.PriceCents, &it.IsActive)
	if err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

// FindMenuItem matches category and title exactly. Inactive items are
// returned too; callers decide what to do with them.
func (r *PostgresRepository) FindMenuItem(ctx context.Context, category, title string) (*domain.MenuItem, error) {
	var it domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, category, title, description, price_cents, is_active
		FROM menu_items
		WHERE category = $1 AND title = $2
		ORDER BY is_active DESC, id
		LIMIT 1
	`, category, title).Scan(&it.ID, &it.Category, &it.Title, &it.Description, &it.PriceCents, &it.IsActive)
	if err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *PostgresRepository) UpdateMenuItemPrice(ctx context.Context, id int64, priceCents int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE menu_items SET price_cents = $1 WHERE id = $2`, priceCents, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Tables

func (r *PostgresRepository) ListTables(ctx context.Context, minSeats int) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, code, seats, zone, is_active
		FROM cafe_tables
		WHERE is_active AND seats >= $1
		ORDER BY seats, id
	`, minSeats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Code, &t.Seats, &t.Zone, &t.IsActive); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int64) (*domain.Table, error) {
	var t domain.Table
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, code, seats, zone, is_active FROM cafe_tables WHERE id = $1
	`, id).Scan(&t.ID, &t.Code, &t.Seats, &t.Zone, &t.IsActive)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Reservations

const overlapQuery = `
	SELECT EXISTS(
		SELECT 1 FROM reservations
		WHERE table_id = $1
		  AND status = ANY($4)
		  AND start_at < $3 AND end_at > $2
	)`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func hasOverlap(ctx context.Context, q queryRower, tableID int64, window domain.Window) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, overlapQuery, tableID, window.Start, window.End,
		pq.Array(domain.BlockingReservationStatuses)).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) HasOverlap(ctx context.Context, tableID int64, window domain.Window) (bool, error) {
	return hasOverlap(ctx, r.DB, tableID, window)
}

// CreateReservation serializes on a transaction-scoped advisory lock keyed
// by table id, re-checks the window and inserts. The exclusion constraint
// catches anything that bypasses the lock.
func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, res.TableID); err != nil {
		return fmt.Errorf("lock table %d: %w", res.TableID, err)
	}

	taken, err := hasOverlap(ctx, tx, res.TableID, res.Window())
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrSlotTaken
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, table_id, start_at, end_at, guests, name, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, res.UserID, res.TableID, res.StartAt, res.EndAt, res.Guests, res.Name, res.Phone, string(res.Status), res.CreatedAt).
		Scan(&res.ID)
	if isExclusionViolation(err) {
		return domain.ErrSlotTaken
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if isExclusionViolation(err) {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

const reservationColumns = `
	r.id, r.user_id, r.table_id, COALESCE(t.code, ''), r.start_at, r.end_at,
	r.guests, r.name, r.phone, r.status, r.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(s rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string
	err := s.Scan(&res.ID, &res.UserID, &res.TableID, &res.TableCode, &res.StartAt, &res.EndAt,
		&res.Guests, &res.Name, &res.Phone, &status, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	res.Status = domain.ReservationStatus(status)
	return &res, nil
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations r
		LEFT JOIN cafe_tables t ON t.id = r.table_id
		WHERE r.id = $1
	`, id)
	res, err := scanReservation(row)
	if err != nil {
		return nil, notFound(err)
	}
	return res, nil
}

func (r *PostgresRepository) ListRecentReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations r
		LEFT JOIN cafe_tables t ON t.id = r.table_id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

// UpdateReservationStatus returns domain.ErrSlotTaken when reviving a
// reservation whose window has since been taken.
func (r *PostgresRepository) UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, string(status), id)
	if isExclusionViolation(err) {
		return domain.ErrSlotTaken
	}
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Orders

// CreateOrder writes the header and all lines in one transaction; a failed
// line aborts the whole order.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, type, status, created_at, scheduled_for, name, phone, address, comment, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, order.UserID, string(order.Type), string(order.Status), order.CreatedAt, nullTime(order.ScheduledFor),
		order.Name, order.Phone, nullString(order.Address), order.Comment, order.TotalCents).
		Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, title, qty, unit_price_cents, comment)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, line.MenuItemID, line.Title, line.Qty, line.UnitPriceCents, line.Comment)
		if err != nil {
			return fmt.Errorf("insert order line for item %d: %w", line.MenuItemID, err)
		}
	}

	return tx.Commit()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const orderColumns = `id, user_id, type, status, created_at, scheduled_for, name, phone, address, comment, total_cents`

func scanOrder(s rowScanner) (*domain.Order, error) {
	var o domain.Order
	var orderType, status string
	var scheduled sql.NullTime
	var address sql.NullString
	err := s.Scan(&o.ID, &o.UserID, &orderType, &status, &o.CreatedAt, &scheduled,
		&o.Name, &o.Phone, &address, &o.Comment, &o.TotalCents)
	if err != nil {
		return nil, err
	}
	o.Type = domain.OrderType(orderType)
	o.Status = domain.OrderStatus(status)
	if scheduled.Valid {
		at := scheduled.Time
		o.ScheduledFor = &at
	}
	o.Address = address.String
	return &o, nil
}

// orderLines resolves titles from the snapshot first, then the menu, so
// lines of deactivated items still render.
func (r *PostgresRepository) orderLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.menu_item_id, COALESCE(NULLIF(oi.title, ''), m.title, ''), oi.qty, oi.unit_price_cents, oi.comment
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.MenuItemID, &l.Title, &l.Qty, &l.UnitPriceCents, &l.Comment); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	if order.Lines, err = r.orderLines(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range orders {
		if orders[i].Lines, err = r.orderLines(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
