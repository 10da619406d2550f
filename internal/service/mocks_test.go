package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/cache"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
)

// mockOrderRepository keeps copies of orders so callers never share state
// with the store, and enforces the version check like the postgres store.
type mockOrderRepository struct {
	m         sync.RWMutex
	orders    map[uuid.UUID]*domain.Order
	createErr error
	updateErr error
	updates   int
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.OrderItem(nil), o.Items...)
	return &c
}

func (m *mockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if order.Version == 0 {
		order.Version = 1
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (m *mockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (m *mockOrderRepository) ListOrders(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	out := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if filter.ShippingEmail != "" && o.ShippingInfo.Email != filter.ShippingEmail {
			continue
		}
		if filter.ShippingPhone != "" && o.ShippingInfo.Phone != filter.ShippingPhone {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (m *mockOrderRepository) UpdateOrder(_ context.Context, order *domain.Order, expectedVersion int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.orders[order.ID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	order.Version = expectedVersion + 1
	order.UpdatedAt = time.Now()
	m.orders[order.ID] = cloneOrder(order)
	m.updates++
	return nil
}

func (m *mockOrderRepository) DeleteOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return o, nil
}

func (m *mockOrderRepository) RunMigrations(*repository.Credentials) error { return nil }

func (m *mockOrderRepository) Close() error { return nil }

func (m *mockOrderRepository) stored(id uuid.UUID) *domain.Order {
	m.m.RLock()
	defer m.m.RUnlock()
	if o, ok := m.orders[id]; ok {
		return cloneOrder(o)
	}
	return nil
}

func (m *mockOrderRepository) count() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return len(m.orders)
}

type notification struct {
	kind    domain.NotificationKind
	orderID uuid.UUID
	status  domain.OrderStatus
}

type mockNotifier struct {
	m     sync.RWMutex
	calls []notification
	err   error
}

func (n *mockNotifier) record(kind domain.NotificationKind, order *domain.Order) error {
	n.m.Lock()
	defer n.m.Unlock()
	n.calls = append(n.calls, notification{kind: kind, orderID: order.ID, status: order.Status})
	return n.err
}

func (n *mockNotifier) SendOrderConfirmation(_ context.Context, order *domain.Order) error {
	return n.record(domain.NotificationOrderConfirmation, order)
}

func (n *mockNotifier) SendShippingNotification(_ context.Context, order *domain.Order) error {
	return n.record(domain.NotificationShippingNotification, order)
}

func (n *mockNotifier) SendDeliveryConfirmation(_ context.Context, order *domain.Order) error {
	return n.record(domain.NotificationDeliveryConfirmation, order)
}

func (n *mockNotifier) SendNewOrderAlert(_ context.Context, order *domain.Order) error {
	return n.record(domain.NotificationNewOrderAlert, order)
}

func (n *mockNotifier) kinds() []domain.NotificationKind {
	n.m.RLock()
	defer n.m.RUnlock()
	out := make([]domain.NotificationKind, 0, len(n.calls))
	for _, c := range n.calls {
		out = append(out, c.kind)
	}
	return out
}

func (n *mockNotifier) reset() {
	n.m.Lock()
	defer n.m.Unlock()
	n.calls = nil
}

type mockProductRepository struct {
	m        sync.RWMutex
	products map[string]*domain.Product
	gets     int
	lists    int
	err      error
}

func newMockProductRepository(products ...*domain.Product) *mockProductRepository {
	r := &mockProductRepository{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *mockProductRepository) ListProducts(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.lists++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Product, 0)
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *mockProductRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.gets++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	c := *p
	return &c, nil
}

func (r *mockProductRepository) CreateProduct(_ context.Context, p *domain.Product) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	r.products[p.ID] = p
	return nil
}

func (r *mockProductRepository) UpdateProduct(_ context.Context, p *domain.Product) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *mockProductRepository) DeleteProduct(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *mockProductRepository) RunMigrations(string) error { return nil }

func (r *mockProductRepository) Close() error { return nil }

func (r *mockProductRepository) getCount() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.gets
}

type mockProductCache struct {
	m           sync.RWMutex
	products    map[string]*domain.Product
	lists       map[string][]*domain.Product
	invalidated []string
	err         error
}

func newMockProductCache() *mockProductCache {
	return &mockProductCache{
		products: make(map[string]*domain.Product),
		lists:    make(map[string][]*domain.Product),
	}
}

func (c *mockProductCache) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (c *mockProductCache) SetProduct(_ context.Context, p *domain.Product) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.products[p.ID] = p
	return nil
}

func (c *mockProductCache) GetProducts(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	l, ok := c.lists[filter.Key()]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return l, nil
}

func (c *mockProductCache) SetProducts(_ context.Context, filter domain.ProductFilter, products []*domain.Product) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.lists[filter.Key()] = products
	return nil
}

func (c *mockProductCache) Invalidate(_ context.Context, id string) error {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.products, id)
	c.lists = make(map[string][]*domain.Product)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *mockProductCache) hasProduct(id string) bool {
	c.m.RLock()
	defer c.m.RUnlock()
	_, ok := c.products[id]
	return ok
}

func (c *mockProductCache) invalidations() []string {
	c.m.RLock()
	defer c.m.RUnlock()
	return append([]string(nil), c.invalidated...)
}

type mockContentRepository struct {
	m             sync.RWMutex
	announcements map[string]*domain.Announcement
	events        map[string]*domain.Event
}

func newMockContentRepository() *mockContentRepository {
	return &mockContentRepository{
		announcements: make(map[string]*domain.Announcement),
		events:        make(map[string]*domain.Event),
	}
}

func (r *mockContentRepository) ListAnnouncements(_ context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	out := make([]*domain.Announcement, 0)
	for _, a := range r.announcements {
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *mockContentRepository) GetAnnouncement(_ context.Context, id string) (*domain.Announcement, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	a, ok := r.announcements[id]
	if !ok {
		return nil, repository.ErrAnnouncementNotFound
	}
	return a, nil
}

func (r *mockContentRepository) CreateAnnouncement(_ context.Context, a *domain.Announcement) error {
	r.m.Lock()
	defer r.m.Unlock()
	r.announcements[a.ID] = a
	return nil
}

func (r *mockContentRepository) UpdateAnnouncement(_ context.Context, a *domain.Announcement) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.announcements[a.ID]; !ok {
		return repository.ErrAnnouncementNotFound
	}
	r.announcements[a.ID] = a
	return nil
}

func (r *mockContentRepository) DeleteAnnouncement(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.announcements[id]; !ok {
		return repository.ErrAnnouncementNotFound
	}
	delete(r.announcements, id)
	return nil
}

func (r *mockContentRepository) ListEvents(context.Context) ([]*domain.Event, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	out := make([]*domain.Event, 0)
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *mockContentRepository) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return e, nil
}

func (r *mockContentRepository) CreateEvent(_ context.Context, e *domain.Event) error {
	r.m.Lock()
	defer r.m.Unlock()
	r.events[e.ID] = e
	return nil
}

func (r *mockContentRepository) UpdateEvent(_ context.Context, e *domain.Event) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return repository.ErrEventNotFound
	}
	r.events[e.ID] = e
	return nil
}

func (r *mockContentRepository) DeleteEvent(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}
