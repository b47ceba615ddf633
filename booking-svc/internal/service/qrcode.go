package service

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	OrderCode(orderID int64) ([]byte, error)
	ReservationCode(reservationID int64) ([]byte, error)
}

// DefaultQRGenerator encodes links back to the public order and reservation
// pages as 256px PNGs.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) OrderCode(orderID int64) ([]byte, error) {
	return qrcode.Encode(fmt.Sprintf("%s/orders/%d", g.BaseURL, orderID), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) ReservationCode(reservationID int64) ([]byte, error) {
	return qrcode.Encode(fmt.Sprintf("%s/reservations/%d", g.BaseURL, reservationID), qrcode.Medium, 256)
}

var _ QRGenerator = DefaultQRGenerator{}

type ReceiptServiceInterface interface {
	OrderQRCode(ctx context.Context, orderID int64) ([]byte, error)
	ReservationQRCode(ctx context.Context, reservationID int64) ([]byte, error)
}

// ReceiptService renders QR codes for records that exist.
type ReceiptService struct {
	store     Store
	qrEncoder QRGenerator
}

func NewReceiptService(store Store, qr QRGenerator) *ReceiptService {
	return &ReceiptService{store: store, qrEncoder: qr}
}

func (s *ReceiptService) OrderQRCode(ctx context.Context, orderID int64) ([]byte, error) {
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.qrEncoder.OrderCode(orderID)
}

func (s *ReceiptService) ReservationQRCode(ctx context.Context, reservationID int64) ([]byte, error) {
	if _, err := s.store.GetReservation(ctx, reservationID); err != nil {
		return nil, err
	}
	return s.qrEncoder.ReservationCode(reservationID)
}

var _ ReceiptServiceInterface = (*ReceiptService)(nil)
