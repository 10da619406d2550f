package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrVersionConflict      = errors.New("order was modified concurrently")
	ErrProductNotFound      = errors.New("product not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrEventNotFound        = errors.New("event not found")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	// UpdateOrder persists items and status only if the stored version still
	// equals expectedVersion, then bumps order.Version.
	UpdateOrder(ctx context.Context, order *domain.Order, expectedVersion int) error
	DeleteOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	RunMigrations(*Credentials) error
	Close() error
}

type ProductRepository interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	RunMigrations(string) error
	Close() error
}

type ContentRepository interface {
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
