package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

var DefaultMinimumOrder = decimal.NewFromInt(1000)

type OrderService struct {
	repo     repository.OrderRepository
	notifier Notifier
	minimum  decimal.Decimal
}

func NewOrderService(repo repository.OrderRepository, notifier Notifier, minimum decimal.Decimal) *OrderService {
	return &OrderService{
		repo:     repo,
		notifier: notifier,
		minimum:  minimum,
	}
}

func (s *OrderService) MinimumOrder() decimal.Decimal {
	return s.minimum
}

type CreateOrderInput struct {
	Items         []domain.OrderItem
	ShippingFee   decimal.Decimal
	Shipping      domain.ShippingInfo
	PaymentMethod string
}

// CreateOrder validates and persists a new order, then alerts the shop.
// The subtotal and total are always recomputed from the items.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:            uuid.New(),
		Items:         make([]domain.OrderItem, len(in.Items)),
		ShippingFee:   in.ShippingFee,
		ShippingInfo:  trimShipping(in.Shipping),
		PaymentMethod: in.PaymentMethod,
		Version:       1,
	}
	copy(order.Items, in.Items)
	for i := range order.Items {
		order.Items[i].Status = domain.ItemStatusPending
	}

	order.Subtotal = order.ItemsSubtotal()
	if order.Subtotal.LessThan(s.minimum) {
		return nil, &MinimumOrderError{Minimum: s.minimum, Subtotal: order.Subtotal}
	}

	if err := validateOrder(order); err != nil {
		return nil, err
	}

	if order.PaymentMethod == "" {
		order.PaymentMethod = domain.PaymentMethodCashOnDelivery
	}
	order.Total = order.Subtotal.Add(order.ShippingFee)
	order.RecomputeStatus()

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.FromContext(ctx).InfoContext(ctx, "order created",
		"order_id", order.ID.String(),
		"items", len(order.Items),
		"total", order.Total.String())

	Dispatch(ctx, s.notifier, domain.NotificationNewOrderAlert, order)
	return order, nil
}

// UpdateOrderInput carries either a whole-order status or an item-level
// status change, never both.
type UpdateOrderInput struct {
	ID         uuid.UUID
	Status     *domain.OrderStatus
	ItemIndex  *int
	ItemStatus *domain.ItemStatus
	// Version, when set, must match the stored order version.
	Version *int
}

func (in UpdateOrderInput) validate() error {
	whole := in.Status != nil
	item := in.ItemIndex != nil || in.ItemStatus != nil

	switch {
	case whole && item:
		return invalid("status", "status cannot be combined with itemIndex/itemStatus")
	case !whole && !item:
		return invalid("status", "either status or itemIndex and itemStatus is required")
	case whole:
		if !in.Status.IsValid() {
			return invalid("status", fmt.Sprintf("unknown order status %q", *in.Status))
		}
	default:
		if in.ItemIndex == nil {
			return invalid("itemIndex", "is required with itemStatus")
		}
		if in.ItemStatus == nil {
			return invalid("itemStatus", "is required with itemIndex")
		}
		if *in.ItemIndex < 0 {
			return invalid("itemIndex", "must not be negative")
		}
		if !in.ItemStatus.IsValid() {
			return invalid("itemStatus", fmt.Sprintf("unknown item status %q", *in.ItemStatus))
		}
	}
	return nil
}

// UpdateOrder applies an admin status change. A whole-order change that
// enters a new status sends the matching customer notification; item-level
// changes only recompute the overall status.
func (s *OrderService) UpdateOrder(ctx context.Context, in UpdateOrderInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order, err := s.repo.GetOrderByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Version != nil && *in.Version != order.Version {
		return nil, repository.ErrVersionConflict
	}
	expected := order.Version
	previous := order.Status

	if in.Status != nil {
		if !domain.CanTransitionTo(previous, *in.Status) {
			return nil, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, previous, *in.Status)
		}
		order.Status = *in.Status
	} else {
		idx := *in.ItemIndex
		if idx >= len(order.Items) {
			return nil, invalid("itemIndex", fmt.Sprintf("out of range, order has %d items", len(order.Items)))
		}
		order.Items[idx].Status = *in.ItemStatus
		order.RecomputeStatus()
	}

	if err := s.repo.UpdateOrder(ctx, order, expected); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "order updated",
		"order_id", order.ID.String(),
		"from", previous.String(),
		"to", order.Status.String(),
		"version", order.Version)

	if in.Status != nil && order.Status != previous {
		if kind, ok := domain.NotificationFor(order.Status); ok {
			Dispatch(ctx, s.notifier, kind, order)
		}
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	filter.ShippingEmail = strings.TrimSpace(filter.ShippingEmail)
	filter.ShippingPhone = strings.TrimSpace(filter.ShippingPhone)
	return s.repo.ListOrders(ctx, filter)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).InfoContext(ctx, "order deleted", "order_id", id.String())
	return order, nil
}

func trimShipping(in domain.ShippingInfo) domain.ShippingInfo {
	return domain.ShippingInfo{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		District:   strings.TrimSpace(in.District),
		PostalCode: strings.TrimSpace(in.PostalCode),
	}
}

func validateOrder(o *domain.Order) error {
	required := []struct {
		field string
		value string
	}{
		{"shippingName", o.ShippingInfo.Name},
		{"shippingEmail", o.ShippingInfo.Email},
		{"shippingPhone", o.ShippingInfo.Phone},
		{"shippingAddress", o.ShippingInfo.Address},
		{"shippingCity", o.ShippingInfo.City},
		{"shippingPostalCode", o.ShippingInfo.PostalCode},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.field, "is required")
		}
	}
	single := []struct {
		field string
		value string
	}{
		{"shippingName", o.ShippingInfo.Name},
		{"shippingEmail", o.ShippingInfo.Email},
		{"shippingPhone", o.ShippingInfo.Phone},
		{"shippingAddress", o.ShippingInfo.Address},
		{"shippingCity", o.ShippingInfo.City},
		{"shippingDistrict", o.ShippingInfo.District},
		{"shippingPostalCode", o.ShippingInfo.PostalCode},
		{"paymentMethod", o.PaymentMethod},
	}
	for _, f := range single {
		if strings.ContainsAny(f.value, "\r\n") {
			return invalid(f.field, "must not contain line breaks")
		}
	}
	// Only a bare address is stored; display names are rejected.
	if addr, err := mail.ParseAddress(o.ShippingInfo.Email); err != nil || addr.Address != o.ShippingInfo.Email {
		return invalid("shippingEmail", "is not a valid email address")
	}
	if o.ShippingFee.IsNegative() {
		return invalid("shippingFee", "must not be negative")
	}

	for i, it := range o.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case strings.TrimSpace(it.ProductID) == "":
			return invalid(field+".productId", "is required")
		case it.Quantity < 1:
			return invalid(field+".quantity", "must be at least 1")
		case it.Price.IsNegative():
			return invalid(field+".price", "must not be negative")
		case !domain.ValidDiscount(it.Discount):
			return invalid(field+".discount", "must be between 0 and 100")
		}
	}
	return nil
}
