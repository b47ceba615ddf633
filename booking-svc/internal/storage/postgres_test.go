package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"cafe-assistant/booking-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func testReservation() *domain.Reservation {
	start := time.Date(2026, 6, 2, 19, 0, 0, 0, time.UTC)
	w := domain.NewWindow(start)
	return &domain.Reservation{
		UserID:    7,
		TableID:   3,
		StartAt:   w.Start,
		EndAt:     w.End,
		Guests:    2,
		Name:      "Anna",
		Phone:     "+79990001122",
		Status:    domain.ReservationPending,
		CreatedAt: start.Add(-24 * time.Hour),
	}
}

func TestCreateReservation_LocksChecksAndInserts(t *testing.T) {
	repo, mock := setupTestDB(t)
	res := testReservation()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(3), res.StartAt, res.EndAt, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	mock.ExpectCommit()

	err := repo.CreateReservation(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, int64(41), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_OverlapRollsBack(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.CreateReservation(context.Background(), testReservation())
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_ExclusionViolation(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnError(&pq.Error{Code: pqExclusionViolation})
	mock.ExpectRollback()

	err := repo.CreateReservation(context.Background(), testReservation())
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_WritesHeaderAndLines(t *testing.T) {
	repo, mock := setupTestDB(t)
	order := &domain.Order{
		UserID:     7,
		Type:       domain.OrderPickup,
		Status:     domain.OrderNew,
		CreatedAt:  time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		Name:       "Ivan",
		Phone:      "+79990001122",
		TotalCents: 202000,
		Lines: []domain.OrderLine{
			{MenuItemID: 1, Title: "Гриль стейк", Qty: 2, UnitPriceCents: 93000},
			{MenuItemID: 2, Title: "Морс", Qty: 1, UnitPriceCents: 16000},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(9), int64(1), "Гриль стейк", 2, int64(93000), "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(9), int64(2), "Морс", 1, int64(16000), "").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.Equal(t, int64(9), order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_FailedLineAbortsOrder(t *testing.T) {
	repo, mock := setupTestDB(t)
	order := &domain.Order{
		Type:   domain.OrderPickup,
		Status: domain.OrderNew,
		Lines:  []domain.OrderLine{{MenuItemID: 1, Qty: 1, UnitPriceCents: 100}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), order)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMenuItem_NotFound(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetMenuItem(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMenuItemPrice_UnknownItem(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items SET price_cents")).
		WithArgs(int64(5000), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateMenuItemPrice(context.Background(), 99, 5000)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReservationStatus_RevivalConflict(t *testing.T) {
	repo, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status")).
		WillReturnError(&pq.Error{Code: pqExclusionViolation})

	err := repo.UpdateReservationStatus(context.Background(), 4, domain.ReservationPending)
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
}

func TestGetOrder_WithLines(t *testing.T) {
	repo, mock := setupTestDB(t)
	created := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "status", "created_at", "scheduled_for",
			"name", "phone", "address", "comment", "total_cents"}).
			AddRow(9, 7, "delivery", "cooking", created, nil, "Ivan", "+7999", "Lenina 10", "", 93000))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items oi")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "title", "qty", "unit_price_cents", "comment"}).
			AddRow(1, "Гриль стейк", 1, 93000, ""))

	order, err := repo.GetOrder(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCooking, order.Status)
	assert.Nil(t, order.ScheduledFor)
	assert.Equal(t, "Lenina 10", order.Address)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Гриль стейк", order.Lines[0].Title)
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := setupTestDB(t)

	for range schemaStatements {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
