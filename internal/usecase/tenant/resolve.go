package tenant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

// Resolver finds active barbershops by slug, going through the cache first.
type Resolver struct {
	repo     domain.Repository
	cache    domain.Cache
	ttl      time.Duration
	observer LookupObserver
}

// LookupObserver receives "hit", "miss" or "error" for every resolution.
type LookupObserver interface {
	TenantLookup(result string)
}

type nopObserver struct{}

func (nopObserver) TenantLookup(string) {}

func NewResolver(repo domain.Repository, cache domain.Cache, ttl time.Duration) *Resolver {
	if cache == nil {
		cache = domain.NopCache{}
	}
	return &Resolver{repo: repo, cache: cache, ttl: ttl, observer: nopObserver{}}
}

func (r *Resolver) SetObserver(o LookupObserver) {
	if o != nil {
		r.observer = o
	}
}

func (r *Resolver) ResolveBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	slug = domain.NormalizeSlug(slug)
	if slug == "" {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	if shop, ok := r.cache.Get(ctx, slug); ok {
		r.observer.TenantLookup("hit")
		return shop, nil
	}

	shop, err := r.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.observer.TenantLookup("miss")
			return nil, httperr.ErrBusiness("barbershop_not_found")
		}
		r.observer.TenantLookup("error")
		slog.ErrorContext(ctx, "resolve barbershop failed", "slug", slug, "error", err)
		return nil, httperr.ErrBusiness("barbershop_load_failed")
	}

	r.observer.TenantLookup("miss")
	r.cache.Set(ctx, shop, r.ttl)
	return shop, nil
}

func (r *Resolver) ListActive(ctx context.Context) ([]domain.Preview, error) {
	return r.repo.ListActive(ctx)
}

// Invalidate drops the cached entry of a slug after the barbershop changed.
func (r *Resolver) Invalidate(ctx context.Context, slug string) {
	r.cache.Delete(ctx, domain.NormalizeSlug(slug))
}
