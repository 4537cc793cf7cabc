package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/database"
	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

// memoryCache is an in-memory CacheProvider. Writes signal on set so tests
// can wait for the async cache fill.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
	set    chan struct{}
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, set: make(chan struct{}, 16)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
	c.set <- struct{}{}
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *memoryCache) waitForSet(t *testing.T) {
	t.Helper()
	select {
	case <-c.set:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cache fill")
	}
}

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.values))
	for k := range c.values {
		out = append(out, k)
	}
	return out
}

func newCachedFixture(t *testing.T) (repositories.ServiceRepository, *memoryCache) {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, jsonstore.NewUserStore(store).Create(ctx, &entities.User{
		ID: "prov-1", Name: "Marta", Email: "marta@example.com", Role: entities.RoleProvider,
	}))
	base := jsonstore.NewServiceStore(store)
	require.NoError(t, base.Create(ctx, &entities.Service{
		ID: "svc-1", Title: "Fontanería", Category: "hogar", ProviderID: "prov-1",
	}))

	cache := newMemoryCache()
	return database.NewCachedServiceAdapter(base, cache, nil), cache
}

func TestCachedServiceAdapter_GetDetailFillsCache(t *testing.T) {
	ctx := context.Background()
	adapter, cache := newCachedFixture(t)

	detail, err := adapter.GetDetail(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Fontanería", detail.Title)

	cache.waitForSet(t)
	assert.Contains(t, cache.keys(), "services:detail:svc-1")
}

func TestCachedServiceAdapter_GetDetailServesFromCache(t *testing.T) {
	ctx := context.Background()
	adapter, cache := newCachedFixture(t)

	// Seed a divergent cached copy: a hit must win over the store.
	cached, err := json.Marshal(&entities.ServiceDetail{
		Service: entities.Service{ID: "svc-1", Title: "Desde caché"},
	})
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "services:detail:svc-1", cached, 300))
	<-cache.set

	detail, err := adapter.GetDetail(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Desde caché", detail.Title)
}

func TestCachedServiceAdapter_ListKeyedByFilter(t *testing.T) {
	ctx := context.Background()
	adapter, cache := newCachedFixture(t)

	_, err := adapter.List(ctx, repositories.ServiceFilter{Category: "hogar"})
	require.NoError(t, err)
	cache.waitForSet(t)

	assert.Contains(t, cache.keys(), "services:list:hogar::")
}

func TestCachedServiceAdapter_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	adapter, cache := newCachedFixture(t)

	_, err := adapter.GetDetail(ctx, "svc-1")
	require.NoError(t, err)
	cache.waitForSet(t)
	_, err = adapter.List(ctx, repositories.ServiceFilter{})
	require.NoError(t, err)
	cache.waitForSet(t)

	_, err = adapter.Update(ctx, "svc-1", repositories.ServicePatch{Price: strPtr("30 €/h")})
	require.NoError(t, err)

	assert.NotContains(t, cache.keys(), "services:detail:svc-1")
	for _, k := range cache.keys() {
		assert.False(t, strings.HasPrefix(k, "services:list:"), "stale list key %s", k)
	}
}

func strPtr(s string) *string { return &s }
