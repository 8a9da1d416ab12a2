package usecase

import (
	"context"
	"sync"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/apperror"
)

// OriginCache memoizes origin -> tenant resolutions for the process
// lifetime. It is injected rather than ambient so tests can supply their
// own instance and the tenant-update path can invalidate it.
type OriginCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewOriginCache() *OriginCache {
	return &OriginCache{entries: make(map[string]string)}
}

func (c *OriginCache) Get(originID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tenantID, ok := c.entries[originID]
	return tenantID, ok
}

func (c *OriginCache) Set(originID, tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[originID] = tenantID
}

// Clear drops every cached resolution. Called when tenant configuration
// changes so stale origin mappings cannot survive an update.
func (c *OriginCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

type tenantUsecase struct {
	tenantRepo domain.TenantRepository
	cache      *OriginCache
	staticMap  map[string]string
}

// NewTenantUsecase builds the tenant resolution and configuration service.
// staticMap is the bootstrap origin -> tenant mapping consulted before the
// registry; it may be nil.
func NewTenantUsecase(tenantRepo domain.TenantRepository, cache *OriginCache, staticMap map[string]string) domain.TenantUsecase {
	if cache == nil {
		cache = NewOriginCache()
	}
	return &tenantUsecase{tenantRepo: tenantRepo, cache: cache, staticMap: staticMap}
}

func (u *tenantUsecase) ResolveOrigin(ctx context.Context, originID string) (string, error) {
	if tenantID, ok := u.cache.Get(originID); ok {
		return tenantID, nil
	}

	if tenantID, ok := u.staticMap[originID]; ok {
		u.cache.Set(originID, tenantID)
		return tenantID, nil
	}

	tenant, err := u.tenantRepo.GetByWebhookOrigin(ctx, originID)
	if err != nil {
		return "", domain.ErrTenantNotFound
	}

	u.cache.Set(originID, tenant.ID)
	return tenant.ID, nil
}

func (u *tenantUsecase) GetTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := u.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Tenant not found")
	}
	return tenant, nil
}

func (u *tenantUsecase) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	return u.tenantRepo.Fetch(ctx)
}

func (u *tenantUsecase) UpdateBranding(ctx context.Context, id string, branding domain.Branding) error {
	if err := u.tenantRepo.UpdateBranding(ctx, id, branding); err != nil {
		return err
	}
	u.cache.Clear()
	return nil
}

func (u *tenantUsecase) UpdateAlertSettings(ctx context.Context, id string, settings domain.AlertSettings) error {
	if settings.DaysWithoutFill <= 0 {
		settings.DaysWithoutFill = 7
	}
	if err := u.tenantRepo.UpdateAlertSettings(ctx, id, settings); err != nil {
		return err
	}
	u.cache.Clear()
	return nil
}
