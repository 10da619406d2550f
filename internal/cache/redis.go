package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
)

const listKeyPrefix = "products:"

func NewRedisProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisProductCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.get(ctx, productKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RedisProductCache) SetProduct(ctx context.Context, p *domain.Product) error {
	return r.set(ctx, productKey(p.ID), p)
}

func (r *RedisProductCache) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := r.get(ctx, listKey(filter), &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = make([]*domain.Product, 0)
	}
	return products, nil
}

func (r *RedisProductCache) SetProducts(ctx context.Context, filter domain.ProductFilter, products []*domain.Product) error {
	return r.set(ctx, listKey(filter), products)
}

func (r *RedisProductCache) Invalidate(ctx context.Context, id string) error {
	keys := []string{productKey(id)}

	iter := r.client.Scan(ctx, 0, listKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisProductCache) get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (r *RedisProductCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

// RedisCartStore keeps session carts in redis. Every read and write
// extends the session's TTL.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisCartStore) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := cartKey(sessionID)

	data, err := r.client.GetEx(ctx, key, r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	cart := domain.NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return cart, nil
}

func (r *RedisCartStore) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func listKey(f domain.ProductFilter) string {
	return listKeyPrefix + f.Key()
}
