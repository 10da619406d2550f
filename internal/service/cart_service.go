package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/cache"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// CartService owns the carts of browser sessions. Each session has its own
// cart; a request only ever touches the cart of its own session.
type CartService struct {
	store    cache.CartStore
	products ProductLookup
	orders   *OrderService
}

func NewCartService(store cache.CartStore, products ProductLookup, orders *OrderService) *CartService {
	return &CartService{
		store:    store,
		products: products,
		orders:   orders,
	}
}

// GetCart returns the session's cart, or an empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return domain.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

// AddItem snapshots the product's current title, price, discount and image
// into the cart, merging with an existing line for the same product.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, wrapLookup(err, productID)
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(domain.CartLine{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Discount:  product.Discount,
		Image:     product.ImageURL,
		Quantity:  quantity,
	})
	return cart, s.save(ctx, sessionID, cart)
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := cart.Line(productID); !ok {
		return nil, ErrCartItemNotFound
	}
	cart.SetQuantity(productID, quantity)
	return cart, s.save(ctx, sessionID, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	return cart, s.save(ctx, sessionID, cart)
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

type CheckoutInput struct {
	ShippingFee   decimal.Decimal
	Shipping      domain.ShippingInfo
	PaymentMethod string
}

// Checkout places an order for the session's cart. The cart is cleared
// only after the order has been persisted.
func (s *CartService) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*domain.Order, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lines := cart.Lines()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Title:     l.Title,
			Price:     l.Price,
			Discount:  l.Discount,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}

	order, err := s.orders.CreateOrder(ctx, CreateOrderInput{
		Items:         items,
		ShippingFee:   in.ShippingFee,
		Shipping:      in.Shipping,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "failed to clear cart after checkout",
			"order_id", order.ID.String(), "error", err)
	}
	return order, nil
}

func (s *CartService) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
