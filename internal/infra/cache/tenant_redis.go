package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

const tenantKeyPrefix = "barberhub:tenant:"

func TenantKey(slug string) string {
	return tenantKeyPrefix + slug
}

// NewRedisClient connects to addr and pings it. It returns nil when the
// server is unreachable so callers can run without a cache.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unavailable, tenant cache disabled", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// CloseClient releases the connection pool; a nil client is a no-op.
func CloseClient(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// TenantRedisCache stores resolved barbershops as JSON. Every failure is
// logged and reported as a miss.
type TenantRedisCache struct {
	client *redis.Client
}

// NewTenantCache returns a no-op cache when client is nil.
func NewTenantCache(client *redis.Client) tenant.Cache {
	if client == nil {
		return tenant.NopCache{}
	}
	return &TenantRedisCache{client: client}
}

func (c *TenantRedisCache) Get(ctx context.Context, slug string) (*models.Barbershop, bool) {
	raw, err := c.client.Get(ctx, TenantKey(slug)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "tenant cache get failed", "slug", slug, "error", err)
		}
		return nil, false
	}

	var shop models.Barbershop
	if err := json.Unmarshal(raw, &shop); err != nil {
		slog.WarnContext(ctx, "tenant cache entry corrupt", "slug", slug, "error", err)
		return nil, false
	}
	return &shop, true
}

func (c *TenantRedisCache) Set(ctx context.Context, b *models.Barbershop, ttl time.Duration) {
	raw, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, TenantKey(b.Slug), raw, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "tenant cache set failed", "slug", b.Slug, "error", err)
	}
}

func (c *TenantRedisCache) Delete(ctx context.Context, slug string) {
	if err := c.client.Del(ctx, TenantKey(slug)).Err(); err != nil {
		slog.WarnContext(ctx, "tenant cache delete failed", "slug", slug, "error", err)
	}
}

var _ tenant.Cache = (*TenantRedisCache)(nil)
