package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Sender delivers one text message to one chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// DeliveryLog remembers which (notification, chat) pairs were already sent
// so a redelivered message does not reach an operator twice.
type DeliveryLog interface {
	AlreadySent(ctx context.Context, notificationID string, chatID int64) (bool, error)
	MarkSent(ctx context.Context, notificationID string, chatID int64) error
}

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

var _ MessageReader = (*kafka.Reader)(nil)
