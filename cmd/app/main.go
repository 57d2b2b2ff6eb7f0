package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightgateway/config"
	"github.com/Domenick1991/flightgateway/internal/bootstrap"
	"github.com/Domenick1991/flightgateway/internal/cache"
	"github.com/Domenick1991/flightgateway/internal/kafka"
	"github.com/Domenick1991/flightgateway/internal/locator"
	"github.com/Domenick1991/flightgateway/internal/logger"
	"github.com/Domenick1991/flightgateway/internal/requester"
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

	lg := logger.New(cfg.Log)
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services := locator.New(
		cfg.Services.FlightsURL,
		cfg.Services.TicketsURL,
		cfg.Services.PrivilegeURL,
		requester.NewHTTPRequester(cfg.Services.RequestTimeout()),
	)

	deps := bootstrap.Deps{Logger: lg}
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Redis.FlightsCacheTTL())
		defer redisCache.Close()
		deps.Cache = redisCache
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		deps.Producer = producer
	}

	lg.Info("backends",
		zap.String("flights", services.FlightsURL()),
		zap.String("tickets", services.TicketsURL()),
		zap.String("privilege", services.PrivilegeURL()),
		zap.Bool("cache", deps.Cache != nil),
		zap.Bool("events", deps.Producer != nil))

	if err := bootstrap.Run(ctx, cfg, bootstrap.NewServices(services, cfg, deps), lg); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}
