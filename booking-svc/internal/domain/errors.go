package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrSlotTaken = errors.New("table is already booked for this time")
	ErrEmptyCart = errors.New("cart is empty")
)
