package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cafe-assistant/config"
	"cafe-assistant/notify-svc/internal/delivery"
	"cafe-assistant/notify-svc/internal/service"
	"cafe-assistant/notify-svc/internal/storage"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if settings.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sender service.Sender = delivery.LogSender{}
	if settings.TelegramBotToken != "" {
		tg, err := delivery.NewTelegramSender(settings.TelegramBotToken)
		if err != nil {
			log.Fatal("Failed to init Telegram bot:", err)
		}
		sender = tg
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, notifications are only logged")
	}

	var deliveries service.DeliveryLog
	if settings.RedisEnabled {
		rdb := settings.MustOpenRedis()
		defer rdb.Close()
		deliveries = storage.NewRedisDeliveryLog(rdb, 0)
	}

	reader := settings.NotificationReader("notify-svc")
	defer reader.Close()

	consumer := service.NewConsumer(reader, sender, deliveries)
	consumer.Start(ctx)
}
