package utils

import (
	"context"
	"fmt"
	"time"

	"roadguard/config"

	"github.com/go-redis/redis/v8"
)

// PubSubClient carries realtime events between server instances.
var PubSubClient *redis.Client

// InitPubSub connects the Redis client used by the event relay.
func InitPubSub() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPubSubDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (PubSub): %w", err)
	}
	PubSubClient = client
	return nil
}

// GetPubSubClient returns the relay client, or nil when Redis is disabled.
func GetPubSubClient() *redis.Client {
	return PubSubClient
}
