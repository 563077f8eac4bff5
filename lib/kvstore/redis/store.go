package redisstore

import (
	"context"

	"attendance-backend/lib/kvstore"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func NewInstance(client *redis.Client) kvstore.Provider {
	return &impl{
		client: client,
	}
}

type impl struct {
	client *redis.Client
}

func (i impl) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := i.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cache read failed, key=%v", key)
	}
	return value, nil
}

func (i impl) Put(ctx context.Context, key string, value []byte) error {
	err := i.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "cache write failed, key=%v", key)
	}
	return nil
}
