package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func itemsWith(statuses ...ItemStatus) []OrderItem {
	items := make([]OrderItem, len(statuses))
	for i, s := range statuses {
		items[i] = OrderItem{ProductID: "p", Quantity: 1, Status: s}
	}
	return items
}

func TestAggregateItemStatuses(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  OrderStatus
	}{
		{"all approved", itemsWith(ItemStatusApproved, ItemStatusApproved), OrderStatusApproved},
		{"all rejected", itemsWith(ItemStatusRejected, ItemStatusRejected), OrderStatusRejected},
		{"approved and pending", itemsWith(ItemStatusApproved, ItemStatusPending), OrderStatusPendingApproval},
		{"rejected and pending", itemsWith(ItemStatusRejected, ItemStatusPending), OrderStatusPendingApproval},
		{"all pending", itemsWith(ItemStatusPending, ItemStatusPending), OrderStatusPendingApproval},
		{"approved and rejected", itemsWith(ItemStatusApproved, ItemStatusRejected), OrderStatusPartiallyApproved},
		{"mixed three", itemsWith(ItemStatusApproved, ItemStatusRejected, ItemStatusApproved), OrderStatusPartiallyApproved},
		{"single approved", itemsWith(ItemStatusApproved), OrderStatusApproved},
		{"no items", nil, OrderStatusPendingApproval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateItemStatuses(tt.items))
		})
	}
}

func TestOrder_RecomputeStatus(t *testing.T) {
	o := &Order{Status: OrderStatusOutForDelivery, Items: itemsWith(ItemStatusApproved, ItemStatusRejected)}
	o.RecomputeStatus()
	assert.Equal(t, OrderStatusPartiallyApproved, o.Status)
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, CanTransitionTo(OrderStatusPendingApproval, OrderStatusApproved))
	assert.True(t, CanTransitionTo(OrderStatusApproved, OrderStatusOutForDelivery))
	assert.True(t, CanTransitionTo(OrderStatusOutForDelivery, OrderStatusDelivered))
	assert.True(t, CanTransitionTo(OrderStatusPartiallyApproved, OrderStatusOutForDelivery))
	assert.True(t, CanTransitionTo(OrderStatusDelivered, OrderStatusDelivered), "re-save of a terminal status")

	assert.False(t, CanTransitionTo(OrderStatusDelivered, OrderStatusApproved))
	assert.False(t, CanTransitionTo(OrderStatusRejected, OrderStatusOutForDelivery))
	assert.False(t, CanTransitionTo(OrderStatusApproved, OrderStatus("Shipped")))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, OrderStatusOutForDelivery.IsValid())
	assert.False(t, OrderStatus("").IsValid())
	assert.True(t, ItemStatusPending.IsValid())
	assert.False(t, ItemStatus("Approved ").IsValid())
	assert.True(t, OrderStatusRejected.IsTerminal())
	assert.False(t, OrderStatusApproved.IsTerminal())
}

func TestNotificationFor(t *testing.T) {
	kind, ok := NotificationFor(OrderStatusApproved)
	assert.True(t, ok)
	assert.Equal(t, NotificationOrderConfirmation, kind)

	kind, ok = NotificationFor(OrderStatusOutForDelivery)
	assert.True(t, ok)
	assert.Equal(t, NotificationShippingNotification, kind)

	kind, ok = NotificationFor(OrderStatusDelivered)
	assert.True(t, ok)
	assert.Equal(t, NotificationDeliveryConfirmation, kind)

	for _, s := range []OrderStatus{OrderStatusPendingApproval, OrderStatusRejected, OrderStatusPartiallyApproved} {
		_, ok := NotificationFor(s)
		assert.False(t, ok, s)
	}
}
