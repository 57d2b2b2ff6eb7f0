package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightgateway/config"
	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps catalog reads. A miss is reported as (nil, nil).
type RedisCache struct {
	client     redis.Cmdable
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return newRedisCache(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), flightsTTL)
}

func newRedisCache(client redis.Cmdable, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

func (c *RedisCache) GetFlight(ctx context.Context, number string) (*domain.Flight, error) {
	var flight domain.Flight
	found, err := c.get(ctx, flightKey(number), &flight)
	if err != nil || !found {
		return nil, err
	}
	return &flight, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	return c.set(ctx, flightKey(flight.FlightNumber), flight)
}

func (c *RedisCache) GetFlightPage(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	var flights domain.FlightPage
	found, err := c.get(ctx, flightPageKey(page, size), &flights)
	if err != nil || !found {
		return nil, err
	}
	return &flights, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, page, size int, flights *domain.FlightPage) error {
	return c.set(ctx, flightPageKey(page, size), flights)
}

func (c *RedisCache) Close() error {
	if closer, ok := c.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func flightKey(number string) string {
	return "cache:flight:" + number
}

func flightPageKey(page, size int) string {
	return fmt.Sprintf("cache:flights:page:%d:size:%d", page, size)
}
