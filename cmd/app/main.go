package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airparadise/chatbot/config"
	"github.com/airparadise/chatbot/internal/bootstrap"
	"github.com/airparadise/chatbot/internal/cache"
	"github.com/airparadise/chatbot/internal/kafka"
	"github.com/airparadise/chatbot/internal/llm"
	"github.com/airparadise/chatbot/internal/logger"
	"github.com/airparadise/chatbot/internal/repository"
	"github.com/airparadise/chatbot/internal/service/booking"
	"github.com/airparadise/chatbot/internal/service/chat"
	"github.com/airparadise/chatbot/internal/service/flights"
	"github.com/airparadise/chatbot/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	var queryCache flights.QueryCache
	switch cfg.Cache.Backend {
	case "redis":
		queryCache = cache.NewRedis(cfg.Redis, cacheTTL)
	default:
		queryCache = cache.NewMemory(cfg.Cache.Capacity, cacheTTL)
	}

	var gateway chat.ModelGateway
	if cfg.LLM.Mock || cfg.LLM.APIKey == "" {
		zlog.Warn("running with the mock language model gateway")
		gateway = llm.NewMock()
	} else {
		gemini, err := llm.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			zlog.Fatal("init gemini client", zap.Error(err))
		}
		defer gemini.Close()
		gateway = gemini
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	executor := flights.NewQueryExecutor(flightRepo, queryCache, zlog)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		producer,
		cfg.Kafka.BookingTopic,
		zlog,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	sessions := session.NewStore(cfg.Session.HistoryWindow)
	chatService := chat.NewChatService(
		sessions,
		gateway,
		executor,
		bookingService,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Database.TimeoutSeconds)*time.Second,
		zlog,
	)

	if err := bootstrap.Run(ctx, cfg, chatService, zlog); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
