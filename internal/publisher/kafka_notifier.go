package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	NotificationsTopic = "order-notifications"
	EventTypeHeader    = "event_type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier hands order notifications to the notifier process instead
// of sending mail from the request path.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaNotifier(brokers ...string) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  NotificationsTopic,
		Balancer:               &kafka.Hash{}, // same order, same partition
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
	return &KafkaNotifier{writer: w, now: time.Now}
}

func (k *KafkaNotifier) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	return k.publish(ctx, domain.NotificationOrderConfirmation, order)
}

func (k *KafkaNotifier) SendShippingNotification(ctx context.Context, order *domain.Order) error {
	return k.publish(ctx, domain.NotificationShippingNotification, order)
}

func (k *KafkaNotifier) SendDeliveryConfirmation(ctx context.Context, order *domain.Order) error {
	return k.publish(ctx, domain.NotificationDeliveryConfirmation, order)
}

func (k *KafkaNotifier) SendNewOrderAlert(ctx context.Context, order *domain.Order) error {
	return k.publish(ctx, domain.NotificationNewOrderAlert, order)
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}

func (k *KafkaNotifier) publish(ctx context.Context, kind domain.NotificationKind, order *domain.Order) error {
	payload, err := json.Marshal(domain.OrderNotification{
		Kind:       kind,
		Order:      order,
		OccurredAt: k.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s notification: %w", kind, err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(kind)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", kind, err)
	}
	return nil
}
