package storage

import (
	"context"
	"encoding/json"
	"time"

	"cafe-assistant/events"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes operator notifications for notify-svc.
type KafkaNotifier struct {
	Writer *kafka.Writer
}

func NewKafkaNotifier(writer *kafka.Writer) *KafkaNotifier {
	return &KafkaNotifier{Writer: writer}
}

func (p *KafkaNotifier) Notify(ctx context.Context, recipients []int64, summary string) error {
	msg := events.Notification{
		ID:         uuid.NewString(),
		Recipients: recipients,
		Summary:    summary,
		Timestamp:  time.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ID),
		Value: payload,
	})
}
