package service

import (
	"context"
	"fmt"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
)

// Notifier delivers order mails. Each call receives the persisted order.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order) error
	SendShippingNotification(ctx context.Context, order *domain.Order) error
	SendDeliveryConfirmation(ctx context.Context, order *domain.Order) error
	SendNewOrderAlert(ctx context.Context, order *domain.Order) error
}

// Send routes a notification kind to the matching Notifier method.
func Send(ctx context.Context, n Notifier, kind domain.NotificationKind, order *domain.Order) error {
	switch kind {
	case domain.NotificationOrderConfirmation:
		return n.SendOrderConfirmation(ctx, order)
	case domain.NotificationShippingNotification:
		return n.SendShippingNotification(ctx, order)
	case domain.NotificationDeliveryConfirmation:
		return n.SendDeliveryConfirmation(ctx, order)
	case domain.NotificationNewOrderAlert:
		return n.SendNewOrderAlert(ctx, order)
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}
}

// Dispatch sends a notification and only logs a failure. The triggering
// operation has already been persisted and is never rolled back.
func Dispatch(ctx context.Context, n Notifier, kind domain.NotificationKind, order *domain.Order) {
	if n == nil {
		return
	}
	if err := Send(ctx, n, kind, order); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "order notification failed",
			"kind", string(kind),
			"order_id", order.ID.String(),
			"error", err)
	}
}

// LogNotifier writes notifications to the log instead of sending mail.
type LogNotifier struct{}

func (LogNotifier) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	return logNotification(ctx, domain.NotificationOrderConfirmation, order)
}

func (LogNotifier) SendShippingNotification(ctx context.Context, order *domain.Order) error {
	return logNotification(ctx, domain.NotificationShippingNotification, order)
}

func (LogNotifier) SendDeliveryConfirmation(ctx context.Context, order *domain.Order) error {
	return logNotification(ctx, domain.NotificationDeliveryConfirmation, order)
}

func (LogNotifier) SendNewOrderAlert(ctx context.Context, order *domain.Order) error {
	return logNotification(ctx, domain.NotificationNewOrderAlert, order)
}

func logNotification(ctx context.Context, kind domain.NotificationKind, order *domain.Order) error {
	logger.FromContext(ctx).InfoContext(ctx, "order notification",
		"kind", string(kind),
		"order_id", order.ID.String(),
		"status", order.Status.String(),
		"to", order.ShippingInfo.Email)
	return nil
}
