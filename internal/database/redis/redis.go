package redis

import (
	"context"
	"log"

	"question-bank-service/internal/config"

	"github.com/redis/go-redis/v9"
)

var Redis_Client *redis.Client

// Init connects the shared client. Rate limiting degrades to fail-open
// when redis is unreachable, so a failed ping only logs.
func Init(cfg *config.Config) {
	Redis_Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := Redis_Client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Error connect to Redis: %s", err)
	}
}

func Close() {
	if Redis_Client != nil {
		if err := Redis_Client.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
}
