package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, in service.UpdateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	MinimumOrder() decimal.Decimal
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, in service.CheckoutInput) (*domain.Order, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type ContentService interface {
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *domain.Announcement) error
	UpdateAnnouncement(ctx context.Context, a *domain.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	CreateEvent(ctx context.Context, e *domain.Event) error
	UpdateEvent(ctx context.Context, e *domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

var (
	_ OrderService   = (*service.OrderService)(nil)
	_ CartService    = (*service.CartService)(nil)
	_ CatalogService = (*service.CatalogService)(nil)
	_ ContentService = (*service.ContentService)(nil)
)
