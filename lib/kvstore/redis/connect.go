package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var Client *redis.Client

func Connect(addr, password string, db int) error {
	if Client == nil {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Wrap(err, "redis connection failed")
		}
		Client = client
		log.Info("service connected to redis")
	}
	return nil
}
