package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "cafe-assistant/booking-svc/internal/api/http"
	"cafe-assistant/booking-svc/internal/service"
	"cafe-assistant/booking-svc/internal/storage"
	"cafe-assistant/config"

	"github.com/spf13/pflag"
)

type storeBackend interface {
	service.Store
	SeedIfEmpty(ctx context.Context) error
	ApplyReferenceMenu(ctx context.Context) error
}

func main() {
	addr := pflag.String("addr", "", "listen address (overrides HTTP_ADDR)")
	inMemory := pflag.Bool("memory", false, "keep all data in process memory instead of Postgres")
	seed := pflag.Bool("seed", true, "insert default tables and menu when empty")
	applyMenu := pflag.Bool("apply-reference-menu", false, "make the active menu match the reference menu and exit")
	pflag.Parse()

	settings, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if *addr != "" {
		settings.HTTPAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storeBackend
	if *inMemory {
		log.Println("Using in-memory store")
		store = storage.NewMemoryStore()
	} else {
		db := settings.MustOpenPostgres()
		defer db.Close()
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		store = repo
	}

	if *seed {
		if err := store.SeedIfEmpty(ctx); err != nil {
			log.Fatal("Failed to seed data:", err)
		}
	}
	if *applyMenu {
		if err := store.ApplyReferenceMenu(ctx); err != nil {
			log.Fatal("Failed to apply reference menu:", err)
		}
		log.Println("Reference menu applied")
		return
	}

	var sessions service.SessionStore
	if settings.RedisEnabled {
		rdb := settings.MustOpenRedis()
		defer rdb.Close()
		sessions = storage.NewRedisSessionStore(rdb, settings.SessionTTL)
	} else {
		log.Println("REDIS_HOST not set, conversation state is kept in memory")
		sessions = storage.NewMemorySessionStore()
	}

	var notifier service.Notifier = service.LogNotifier{}
	if settings.KafkaBroker != "" {
		writer := settings.NotificationWriter()
		defer writer.Close()
		notifier = storage.NewKafkaNotifier(writer)
	}
	dispatcher := service.NewDispatcher(notifier, settings.OperatorChatIDs)

	now := func() time.Time { return time.Now().In(settings.Location) }
	checkout := service.NewCheckout(store, dispatcher, now)
	assistant := service.NewAssistant(store, sessions, checkout, now)
	admin := service.NewAdminService(store, settings.AdminUserIDs, settings.AdminChatID)
	receipts := service.NewReceiptService(store, service.DefaultQRGenerator{BaseURL: settings.PublicBaseURL})

	handler := httpapi.NewHandler(assistant, service.NewCatalog(store), admin, receipts)
	handler.AdminToken = settings.AdminAPIToken
	if handler.AdminToken == "" {
		log.Println("Warning: ADMIN_API_TOKEN is not set, admin API trusts identity headers as sent")
	}
	if err := httpapi.StartServer(ctx, settings.HTTPAddr, httpapi.NewRouter(handler)); err != nil {
		log.Printf("Server error: %v", err)
	}

	dispatcher.Wait()
	log.Println("Booking Service stopped")
}
