package cache

import (
	"context"
	"errors"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
)

// ProductCache is a read-through cache in front of the catalog store.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, p *domain.Product) error
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	SetProducts(ctx context.Context, filter domain.ProductFilter, products []*domain.Product) error
	// Invalidate drops the product entry and every cached listing.
	Invalidate(ctx context.Context, id string) error
}

// CartStore keeps one cart per browser session. Entries expire after a
// period of inactivity.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopProductCache always misses. Used when no redis is configured.
type NopProductCache struct{}

func (NopProductCache) GetProduct(context.Context, string) (*domain.Product, error) {
	return nil, ErrCacheMiss
}

func (NopProductCache) SetProduct(context.Context, *domain.Product) error { return nil }

func (NopProductCache) GetProducts(context.Context, domain.ProductFilter) ([]*domain.Product, error) {
	return nil, ErrCacheMiss
}

func (NopProductCache) SetProducts(context.Context, domain.ProductFilter, []*domain.Product) error {
	return nil
}

func (NopProductCache) Invalidate(context.Context, string) error { return nil }
