package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cafe-assistant/events"
)

const defaultRetryDelay = 2 * time.Second

type Consumer struct {
	Reader     MessageReader
	Sender     Sender
	Deliveries DeliveryLog
	// RetryDelay is the pause after a failed read.
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, sender Sender, deliveries DeliveryLog) *Consumer {
	return &Consumer{
		Reader:     reader,
		Sender:     sender,
		Deliveries: deliveries,
		RetryDelay: defaultRetryDelay,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Notification Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Notification Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			select {
			case <-ctx.Done():
				log.Println("Notification Service consumer stopped")
				return
			case <-time.After(c.RetryDelay):
			}
			continue
		}

		var msg events.Notification
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessNotification(ctx, msg)
	}
}

// ProcessNotification sends the summary to every recipient and returns how
// many sends succeeded. A failing recipient is logged and skipped.
func (c *Consumer) ProcessNotification(ctx context.Context, msg events.Notification) int {
	if msg.Summary == "" || len(msg.Recipients) == 0 {
		log.Printf("Skipping empty notification %s", msg.ID)
		return 0
	}

	delivered := 0
	for _, chatID := range msg.Recipients {
		if c.Deliveries != nil && msg.ID != "" {
			sent, err := c.Deliveries.AlreadySent(ctx, msg.ID, chatID)
			if err != nil {
				log.Printf("Warning: delivery log lookup failed for %s/%d: %v", msg.ID, chatID, err)
			} else if sent {
				continue
			}
		}

		if err := c.Sender.Send(ctx, chatID, msg.Summary); err != nil {
			log.Printf("Error sending notification %s to chat %d: %v", msg.ID, chatID, err)
			continue
		}
		delivered++

		if c.Deliveries != nil && msg.ID != "" {
			if err := c.Deliveries.MarkSent(ctx, msg.ID, chatID); err != nil {
				log.Printf("Warning: failed to record delivery %s/%d: %v", msg.ID, chatID, err)
			}
		}
	}

	log.Printf("Notification %s delivered to %d of %d chats", msg.ID, delivered, len(msg.Recipients))
	return delivered
}
