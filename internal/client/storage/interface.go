package storage

import "context"

// Storage is a string-keyed, string-valued durable store.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
	// Apply writes set and deletes remove in a single transaction.
	Apply(ctx context.Context, set map[string]string, remove []string) error
	List(ctx context.Context) (map[string]string, error)
	Close() error
}
