package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-web/config"
	"github.com/Domenick1991/airbooking-web/internal/kafka"
	"github.com/Domenick1991/airbooking-web/internal/logging"
	"github.com/Domenick1991/airbooking-web/internal/notify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Kafka.Enabled() {
		logger.Fatal("kafka brokers and activity topic are required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ActivityTopic, logger)
	defer consumer.Close()

	sender := notify.NewSender(logger)

	logger.Info("worker consuming activity events", zap.String("topic", cfg.Kafka.ActivityTopic))
	err = consumer.ConsumeActivity(ctx, func(ctx context.Context, ev kafka.ActivityEvent) error {
		if err := sender.Send(ctx, ev); err != nil {
			logger.Error("send notice failed", zap.String("type", ev.Type), zap.Error(err))
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", zap.Error(err))
	}
	logger.Info("worker stopped")
}
