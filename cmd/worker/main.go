package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightgateway/config"
	"github.com/Domenick1991/flightgateway/internal/kafka"
	"github.com/Domenick1991/flightgateway/internal/logger"
	"github.com/Domenick1991/flightgateway/internal/notify"
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

	lg := logger.New(cfg.Log).Named("worker")
	defer func() { _ = lg.Sync() }()

	if !cfg.Kafka.Enabled() {
		lg.Fatal("kafka brokers and ticket_events_topic must be configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TicketEventsTopic, lg)
	defer consumer.Close()

	notifier := notify.NewNotifier(lg)

	lg.Info("consuming ticket events", zap.String("topic", cfg.Kafka.TicketEventsTopic))
	if err := consumer.Consume(ctx, notifier.Send); err != nil {
		lg.Error("consumer stopped", zap.Error(err))
		return
	}
	lg.Info("worker stopped")
}
