package domain

type OrderStatus string

const (
	OrderStatusPendingApproval   OrderStatus = "Pending Approval"
	OrderStatusApproved          OrderStatus = "Approved"
	OrderStatusPartiallyApproved OrderStatus = "Partially Approved"
	OrderStatusRejected          OrderStatus = "Rejected"
	OrderStatusOutForDelivery    OrderStatus = "Out for Delivery"
	OrderStatusDelivered         OrderStatus = "Delivered"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingApproval, OrderStatusApproved, OrderStatusPartiallyApproved,
		OrderStatusRejected, OrderStatusOutForDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRejected
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether an admin may move an order from one overall
// status to another. Terminal orders only accept a re-save of the same status.
func CanTransitionTo(from, to OrderStatus) bool {
	if !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	return !from.IsTerminal()
}

type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "Pending"
	ItemStatusApproved ItemStatus = "Approved"
	ItemStatusRejected ItemStatus = "Rejected"
)

func (s ItemStatus) IsValid() bool {
	return s == ItemStatusPending || s == ItemStatusApproved || s == ItemStatusRejected
}

// AggregateItemStatuses derives the overall order status from item statuses.
// Precedence: all approved, all rejected, any pending, otherwise partial.
// An order without items is still awaiting approval.
func AggregateItemStatuses(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return OrderStatusPendingApproval
	}
	var approved, rejected, pending int
	for _, it := range items {
		switch it.Status {
		case ItemStatusApproved:
			approved++
		case ItemStatusRejected:
			rejected++
		default:
			pending++
		}
	}
	switch {
	case approved == len(items):
		return OrderStatusApproved
	case rejected == len(items):
		return OrderStatusRejected
	case pending > 0:
		return OrderStatusPendingApproval
	default:
		return OrderStatusPartiallyApproved
	}
}

type NotificationKind string

const (
	NotificationOrderConfirmation    NotificationKind = "OrderConfirmation"
	NotificationShippingNotification NotificationKind = "ShippingNotification"
	NotificationDeliveryConfirmation NotificationKind = "DeliveryConfirmation"
	NotificationNewOrderAlert        NotificationKind = "NewOrderAlert"
)

// NotificationFor maps a newly entered overall status to the mail it triggers.
func NotificationFor(status OrderStatus) (NotificationKind, bool) {
	switch status {
	case OrderStatusApproved:
		return NotificationOrderConfirmation, true
	case OrderStatusOutForDelivery:
		return NotificationShippingNotification, true
	case OrderStatusDelivered:
		return NotificationDeliveryConfirmation, true
	}
	return "", false
}
