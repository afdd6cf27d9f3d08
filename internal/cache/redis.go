package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/airparadise/chatbot/config"
	"github.com/airparadise/chatbot/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Redis stores query results keyed by signature, one JSON value per entry.
// Capacity bounding is left to the Redis instance; TTL matches the memory
// backend's default.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(cfg config.RedisConfig, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *Redis) GetFlights(ctx context.Context, signature string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, queryKey(signature)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *Redis) SetFlights(ctx context.Context, signature string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, queryKey(signature), payload, c.ttl).Err()
}

func queryKey(signature string) string {
	return "cache:query:" + signature
}
