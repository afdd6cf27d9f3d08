package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/airparadise/chatbot/config"
	"github.com/airparadise/chatbot/internal/email"
	"github.com/airparadise/chatbot/internal/kafka"
	"github.com/airparadise/chatbot/internal/logger"
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, zlog)
	defer consumer.Close()

	emailSender := email.NewSender()

	zlog.Info("notifications worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))

	if err := consumer.Consume(ctx, emailSender.Send); err != nil && ctx.Err() == nil {
		zlog.Error("consumer stopped", zap.Error(err))
	}
}
