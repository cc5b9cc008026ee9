package app

import (
	"context"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mkravets/go-task-api/internal/config"
)

var globalRedisClient *redis.Client

func MustConnectRedis() {
	cfg := config.Global().Redis

	globalRedisClient = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err := globalRedisClient.Ping(ctx).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to redis")
}

func DisconnectRedis() {
	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close redis client")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
