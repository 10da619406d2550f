package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const PaymentMethodCashOnDelivery = "cash_on_delivery"

type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Status    ItemStatus      `json:"status"`
}

func (i OrderItem) UnitPrice() decimal.Decimal {
	return EffectivePrice(i.Price, i.Discount)
}

func (i OrderItem) Total() decimal.Decimal {
	return LineTotal(i.Price, i.Discount, i.Quantity)
}

// ShippingInfo is embedded in Order, so its fields sit at the top level of
// the order's JSON as they do in the create request.
type ShippingInfo struct {
	Name       string `json:"shippingName"`
	Email      string `json:"shippingEmail"`
	Phone      string `json:"shippingPhone"`
	Address    string `json:"shippingAddress"`
	City       string `json:"shippingCity"`
	District   string `json:"shippingDistrict,omitempty"`
	PostalCode string `json:"shippingPostalCode"`
}

type Order struct {
	ID            uuid.UUID       `json:"id"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	Total         decimal.Decimal `json:"total"`
	ShippingInfo
	PaymentMethod string          `json:"paymentMethod"`
	Status        OrderStatus     `json:"status"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RecomputeStatus sets the overall status from the item statuses.
func (o *Order) RecomputeStatus() {
	o.Status = AggregateItemStatuses(o.Items)
}

// ItemsSubtotal sums the effective line totals of the order items.
func (o *Order) ItemsSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Total())
	}
	return total
}

// OrderFilter selects orders by customer contact details.
type OrderFilter struct {
	ShippingEmail string
	ShippingPhone string
}

func (f OrderFilter) IsEmpty() bool {
	return f.ShippingEmail == "" && f.ShippingPhone == ""
}

// OrderNotification is the payload carried on the notifications topic.
type OrderNotification struct {
	Kind       NotificationKind `json:"kind"`
	Order      *Order           `json:"order"`
	OccurredAt time.Time        `json:"occurredAt"`
}
