package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const DefaultNotifyTopic = "operator-notifications"

// Settings is the process configuration shared by booking-svc and notify-svc.
type Settings struct {
	HTTPAddr string

	AdminUserIDs    []int64
	AdminChatID     int64
	OperatorChatIDs []int64

	Location   *time.Location
	SessionTTL time.Duration

	PostgresDSN  string
	RedisEnabled bool
	RedisAddr    string
	KafkaBroker  string
	NotifyTopic  string

	PublicBaseURL    string
	TelegramBotToken string
	AdminAPIToken    string
}

// Load reads .env (when present) and the process environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	adminIDs, err := ParseIDList(os.Getenv("ADMIN_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_USER_IDS: %w", err)
	}

	var adminChatID int64
	if raw := strings.TrimSpace(os.Getenv("ADMIN_CHAT_ID")); raw != "" {
		adminChatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID: %w", err)
		}
	}

	operators, err := ParseIDList(os.Getenv("OPERATOR_CHAT_IDS"))
	if err != nil {
		return nil, fmt.Errorf("OPERATOR_CHAT_IDS: %w", err)
	}
	if len(operators) == 0 && adminChatID != 0 {
		operators = []int64{adminChatID}
	}

	loc, err := time.LoadLocation(getEnv("CAFE_TIMEZONE", "Europe/Moscow"))
	if err != nil {
		return nil, fmt.Errorf("CAFE_TIMEZONE: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("SESSION_TTL: negative duration %s", ttl)
	}

	return &Settings{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8084"),
		AdminUserIDs:     adminIDs,
		AdminChatID:      adminChatID,
		OperatorChatIDs:  operators,
		Location:         loc,
		SessionTTL:       ttl,
		PostgresDSN:      PostgresDSN(),
		RedisEnabled:     strings.TrimSpace(os.Getenv("REDIS_HOST")) != "",
		RedisAddr:        getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		KafkaBroker:      strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		NotifyTopic:      getEnv("NOTIFY_TOPIC", DefaultNotifyTopic),
		PublicBaseURL:    strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8084"), "/"),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		AdminAPIToken:    strings.TrimSpace(os.Getenv("ADMIN_API_TOKEN")),
	}, nil
}

// ParseIDList accepts ids separated by commas or semicolons; blanks are skipped.
func ParseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(strings.ReplaceAll(raw, ";", ","), ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// PostgresDSN builds the lib/pq connection string from DB_* variables.
func PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"), getEnv("DB_USER", "cafe"),
		os.Getenv("DB_PASSWORD"), getEnv("DB_NAME", "cafe"), getEnv("DB_SSLMODE", "disable"))
}

// MustOpenPostgres opens and pings the database or exits.
func (s *Settings) MustOpenPostgres() *sql.DB {
	db, err := sql.Open("postgres", s.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	// every reservation insert holds a connection for the advisory lock
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return db
}

func (s *Settings) MustOpenRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: s.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis at "+s.RedisAddr+":", err)
	}
	return client
}

// NotificationReader consumes the notification topic as part of groupID.
func (s *Settings) NotificationReader(groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{s.KafkaBroker},
		Topic:    s.NotifyTopic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
}

// NotificationWriter publishes to the notification topic, keyed by event id.
func (s *Settings) NotificationWriter() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(s.KafkaBroker),
		Topic:                  s.NotifyTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}
