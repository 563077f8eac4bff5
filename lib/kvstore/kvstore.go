package kvstore

import "context"

// Provider is the key-value port of the durable local store.
// Get returns (nil, nil) when the key is absent.
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
