package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/providers"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/observability"
)

// CachedServiceAdapter wraps a ServiceRepository with caching for the
// read-heavy catalog paths. Writes invalidate eagerly.
type CachedServiceAdapter struct {
	adapter repositories.ServiceRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedServiceAdapter creates a new cached service adapter. Metrics
// may be nil when observability is disabled.
func NewCachedServiceAdapter(adapter repositories.ServiceRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.ServiceRepository {
	return &CachedServiceAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// Cache TTLs (in seconds)
const (
	serviceDetailTTL = 300 // 5 minutes for a single service
	serviceListTTL   = 120 // 2 minutes for catalog listings
)

const serviceListPrefix = "services:list:"

func serviceDetailCacheKey(id string) string {
	return fmt.Sprintf("services:detail:%s", id)
}

func serviceListCacheKey(filter repositories.ServiceFilter) string {
	return fmt.Sprintf("%s%s:%s:%s", serviceListPrefix, filter.Category, filter.Location, filter.ProviderID)
}

func (a *CachedServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	return a.adapter.GetByID(ctx, id)
}

// GetDetail retrieves a service detail with caching.
func (a *CachedServiceAdapter) GetDetail(ctx context.Context, id string) (*entities.ServiceDetail, error) {
	cacheKey := serviceDetailCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var detail entities.ServiceDetail
		if err := json.Unmarshal(cached, &detail); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "service_detail")
			return &detail, nil
		}
		log.Warn().Err(err).Str("service_id", id).Msg("failed to unmarshal cached service detail")
	}
	observability.RecordCacheMiss(ctx, a.metrics, "service_detail")

	detail, err := a.adapter.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	// Fill the cache off the request path.
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(detail); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, serviceDetailTTL); err != nil {
				log.Warn().Err(err).Str("service_id", id).Msg("failed to cache service detail")
			}
		}
	}()

	return detail, nil
}

// List retrieves service listings with caching keyed by filter.
func (a *CachedServiceAdapter) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.ServiceListing, error) {
	cacheKey := serviceListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var listings []*entities.ServiceListing
		if err := json.Unmarshal(cached, &listings); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "service_list")
			return listings, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached service listings")
	}
	observability.RecordCacheMiss(ctx, a.metrics, "service_list")

	listings, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(listings); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, serviceListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache service listings")
			}
		}
	}()

	return listings, nil
}

func (a *CachedServiceAdapter) Create(ctx context.Context, service *entities.Service) error {
	if err := a.adapter.Create(ctx, service); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	return nil
}

func (a *CachedServiceAdapter) Update(ctx context.Context, id string, patch repositories.ServicePatch) (*entities.Service, error) {
	svc, err := a.adapter.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	a.invalidate(ctx, id)
	return svc, nil
}

func (a *CachedServiceAdapter) Delete(ctx context.Context, id string) (*entities.Service, error) {
	svc, err := a.adapter.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	a.invalidate(ctx, id)
	return svc, nil
}

func (a *CachedServiceAdapter) Upsert(ctx context.Context, service *entities.Service) (bool, error) {
	created, err := a.adapter.Upsert(ctx, service)
	if err != nil {
		return false, err
	}
	if created {
		a.invalidateLists(ctx)
	}
	return created, nil
}

func (a *CachedServiceAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, serviceDetailCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("service_id", id).Msg("failed to invalidate service detail cache")
	}
	a.invalidateLists(ctx)
}

func (a *CachedServiceAdapter) invalidateLists(ctx context.Context) {
	if err := a.cache.DeleteByPrefix(ctx, serviceListPrefix); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate service list cache")
	}
}
