package http

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type mockOrderService struct {
	m          sync.RWMutex
	order      *domain.Order
	orders     []*domain.Order
	err        error
	lastCreate service.CreateOrderInput
	lastUpdate service.UpdateOrderInput
	lastFilter domain.OrderFilter
	listCalls  int
}

func (s *mockOrderService) CreateOrder(_ context.Context, in service.CreateOrderInput) (*domain.Order, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.lastCreate = in
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *mockOrderService) UpdateOrder(_ context.Context, in service.UpdateOrderInput) (*domain.Order, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.lastUpdate = in
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *mockOrderService) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.order == nil || s.order.ID != id {
		return nil, repository.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *mockOrderService) ListOrders(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.listCalls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func (s *mockOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.GetOrder(ctx, id)
}

func (s *mockOrderService) MinimumOrder() decimal.Decimal {
	return decimal.NewFromInt(1000)
}

type mockCartService struct {
	m           sync.RWMutex
	carts       map[string]*domain.Cart
	order       *domain.Order
	err         error
	checkoutErr error
	lastInput   service.CheckoutInput
}

func newMockCartService() *mockCartService {
	return &mockCartService{carts: make(map[string]*domain.Cart)}
}

func (s *mockCartService) cart(sessionID string) *domain.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = domain.NewCart()
		s.carts[sessionID] = c
	}
	return c
}

func (s *mockCartService) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.cart(sessionID), nil
}

func (s *mockCartService) AddItem(_ context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	c := s.cart(sessionID)
	c.AddItem(domain.CartLine{ProductID: productID, Title: "Book " + productID, Price: decimal.NewFromInt(400), Quantity: quantity})
	return c, nil
}

func (s *mockCartService) UpdateQuantity(_ context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	c := s.cart(sessionID)
	if _, ok := c.Line(productID); !ok {
		return nil, service.ErrCartItemNotFound
	}
	c.SetQuantity(productID, quantity)
	return c, nil
}

func (s *mockCartService) RemoveItem(_ context.Context, sessionID, productID string) (*domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	c := s.cart(sessionID)
	c.RemoveItem(productID)
	return c, nil
}

func (s *mockCartService) ClearCart(_ context.Context, sessionID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *mockCartService) Checkout(_ context.Context, sessionID string, in service.CheckoutInput) (*domain.Order, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.lastInput = in
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	delete(s.carts, sessionID)
	return s.order, nil
}

func (s *mockCartService) lines(sessionID string) int {
	s.m.RLock()
	defer s.m.RUnlock()
	if c, ok := s.carts[sessionID]; ok {
		return c.Len()
	}
	return 0
}

type mockCatalogService struct {
	m          sync.RWMutex
	products   map[string]*domain.Product
	lastFilter domain.ProductFilter
	err        error
}

func newMockCatalogService() *mockCatalogService {
	return &mockCatalogService{products: make(map[string]*domain.Product)}
}

func (s *mockCatalogService) ListProducts(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *mockCatalogService) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (s *mockCatalogService) CreateProduct(_ context.Context, p *domain.Product) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	p.ID = uuid.NewString()
	s.products[p.ID] = p
	return nil
}

func (s *mockCatalogService) UpdateProduct(_ context.Context, p *domain.Product) error {
	s.m.Lock()
	defer s.m.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	s.products[p.ID] = p
	return nil
}

func (s *mockCatalogService) DeleteProduct(_ context.Context, id string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

type mockContentService struct {
	m             sync.RWMutex
	announcements []*domain.Announcement
	events        []*domain.Event
	activeOnly    *bool
	err           error
}

func (s *mockContentService) ListAnnouncements(_ context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.activeOnly = &activeOnly
	return s.announcements, s.err
}

func (s *mockContentService) GetAnnouncement(_ context.Context, id string) (*domain.Announcement, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	for _, a := range s.announcements {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrAnnouncementNotFound
}

func (s *mockContentService) CreateAnnouncement(_ context.Context, a *domain.Announcement) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	a.ID = uuid.NewString()
	s.announcements = append(s.announcements, a)
	return nil
}

func (s *mockContentService) UpdateAnnouncement(_ context.Context, a *domain.Announcement) error {
	s.m.Lock()
	defer s.m.Unlock()
	for i, existing := range s.announcements {
		if existing.ID == a.ID {
			s.announcements[i] = a
			return nil
		}
	}
	return repository.ErrAnnouncementNotFound
}

func (s *mockContentService) DeleteAnnouncement(_ context.Context, id string) error {
	s.m.Lock()
	defer s.m.Unlock()
	for i, existing := range s.announcements {
		if existing.ID == id {
			s.announcements = append(s.announcements[:i], s.announcements[i+1:]...)
			return nil
		}
	}
	return repository.ErrAnnouncementNotFound
}

func (s *mockContentService) ListEvents(_ context.Context) ([]*domain.Event, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.events, s.err
}

func (s *mockContentService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func (s *mockContentService) CreateEvent(_ context.Context, e *domain.Event) error {
	s.m.Lock()
	defer s.m.Unlock()
	if e.EndsAt != nil && e.EndsAt.Before(e.StartsAt) {
		return &service.ValidationError{Field: "endsAt", Message: "must not be before startsAt"}
	}
	e.ID = uuid.NewString()
	s.events = append(s.events, e)
	return nil
}

func (s *mockContentService) UpdateEvent(_ context.Context, e *domain.Event) error {
	s.m.Lock()
	defer s.m.Unlock()
	for i, existing := range s.events {
		if existing.ID == e.ID {
			s.events[i] = e
			return nil
		}
	}
	return repository.ErrEventNotFound
}

func (s *mockContentService) DeleteEvent(_ context.Context, id string) error {
	s.m.Lock()
	defer s.m.Unlock()
	for i, existing := range s.events {
		if existing.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return repository.ErrEventNotFound
}
