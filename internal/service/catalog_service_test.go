package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProduct_CacheHit(t *testing.T) {
	repo := newMockProductRepository()
	c := newMockProductCache()
	c.products["p1"] = book("p1", 100, 0)

	svc := NewCatalogService(repo, c)
	p, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Zero(t, repo.getCount())
}

func TestGetProduct_CacheMissPopulates(t *testing.T) {
	repo := newMockProductRepository(book("p1", 100, 0))
	c := newMockProductCache()

	svc := NewCatalogService(repo, c)
	_, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return c.hasProduct("p1") }, time.Second, 10*time.Millisecond)
}

func TestGetProduct_CacheErrorFallsBack(t *testing.T) {
	repo := newMockProductRepository(book("p1", 100, 0))
	c := newMockProductCache()
	c.err = assert.AnError

	svc := NewCatalogService(repo, c)
	p, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newMockProductRepository(), nil)
	_, err := svc.GetProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestGetProduct_ConcurrentMissesShareLoad(t *testing.T) {
	repo := newMockProductRepository(book("p1", 100, 0))
	svc := NewCatalogService(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetProduct(context.Background(), "p1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, repo.getCount(), 20)
	assert.GreaterOrEqual(t, repo.getCount(), 1)
}

func TestListProducts(t *testing.T) {
	a := book("a", 100, 0)
	a.Category = "primary"
	b := book("b", 100, 0)
	b.Category = "secondary"
	repo := newMockProductRepository(a, b)
	c := newMockProductCache()
	svc := NewCatalogService(repo, c)

	list, err := svc.ListProducts(context.Background(), domain.ProductFilter{Category: "primary"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	require.Eventually(t, func() bool {
		_, err := c.GetProducts(context.Background(), domain.ProductFilter{Category: "primary"})
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

func TestCreateProduct_AssignsIDAndInvalidates(t *testing.T) {
	repo := newMockProductRepository()
	c := newMockProductCache()
	svc := NewCatalogService(repo, c)

	p := &domain.Product{Title: "  Atlas ", Price: dec(1500), Discount: dec(5)}
	require.NoError(t, svc.CreateProduct(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Atlas", p.Title)
	assert.Equal(t, []string{p.ID}, c.invalidations())
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewCatalogService(newMockProductRepository(), nil)
	badRating := 6.0
	negReviews := -1

	tests := []struct {
		name  string
		p     *domain.Product
		field string
	}{
		{"title", &domain.Product{Price: dec(1)}, "title"},
		{"price", &domain.Product{Title: "x", Price: dec(-1)}, "price"},
		{"discount", &domain.Product{Title: "x", Price: dec(1), Discount: dec(150)}, "discount"},
		{"rating", &domain.Product{Title: "x", Price: dec(1), Rating: &badRating}, "rating"},
		{"reviews", &domain.Product{Title: "x", Price: dec(1), ReviewCount: &negReviews}, "reviewCount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateProduct(context.Background(), tt.p)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	repo := newMockProductRepository(book("p1", 100, 0))
	c := newMockProductCache()
	svc := NewCatalogService(repo, c)
	ctx := context.Background()

	updated := book("p1", 250, 10)
	require.NoError(t, svc.UpdateProduct(ctx, updated))
	require.NoError(t, svc.DeleteProduct(ctx, "p1"))
	assert.Equal(t, []string{"p1", "p1"}, c.invalidations())

	assert.ErrorIs(t, svc.DeleteProduct(ctx, "p1"), repository.ErrProductNotFound)
	assert.ErrorIs(t, svc.UpdateProduct(ctx, book("p9", 1, 0)), repository.ErrProductNotFound)
	assert.Len(t, c.invalidations(), 2, "failed writes do not invalidate")
}
