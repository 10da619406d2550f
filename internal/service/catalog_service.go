package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/cache"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
	"golang.org/x/sync/singleflight"
)

type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.ProductRepository, c cache.ProductCache) *CatalogService {
	if c == nil {
		c = cache.NopProductCache{}
	}
	return &CatalogService{
		repo:  repo,
		cache: c,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("list:"+filter.Key(), func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx, filter)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.FromContext(ctx).WarnContext(ctx, "cache get error", "error", err)
		}

		products, err = s.repo.ListProducts(ctx, filter)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.SetProducts(context.Background(), filter, products); err != nil {
				logger.FromContext(ctx).Warn("cache set error", "error", err)
			}
		}()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do("product:"+id, func() (interface{}, error) {
		p, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.FromContext(ctx).WarnContext(ctx, "cache get error", "error", err)
		}

		p, err = s.repo.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.SetProduct(context.Background(), p); err != nil {
				logger.FromContext(ctx).Warn("cache set error", "error", err)
			}
		}()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "cache invalidate error", "product_id", id, "error", err)
	}
}

func validateProduct(p *domain.Product) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return invalid("title", "is required")
	}
	if p.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	if !domain.ValidDiscount(p.Discount) {
		return invalid("discount", "must be between 0 and 100")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return invalid("rating", "must be between 0 and 5")
	}
	if p.ReviewCount != nil && *p.ReviewCount < 0 {
		return invalid("reviewCount", "must not be negative")
	}
	return nil
}

// ProductLookup is the part of the catalog the cart needs.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

var _ ProductLookup = (*CatalogService)(nil)

func wrapLookup(err error, id string) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return err
	}
	return fmt.Errorf("failed to look up product %s: %w", id, err)
}
