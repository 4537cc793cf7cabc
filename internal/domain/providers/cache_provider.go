package providers

import "context"

// CacheProvider abstracts the cache used to decorate read-heavy
// repositories.
type CacheProvider interface {
	// Get retrieves a value; an error means miss or backend failure.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL in seconds.
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key with the given prefix. Used for
	// write invalidation of listing caches.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Exists checks whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
