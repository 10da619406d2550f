package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/publisher"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/segmentio/kafka-go"
)

const DefaultGroupID = "order-notifier"

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// NotificationConsumer reads order notifications from Kafka and delivers
// them through a Notifier, typically the SMTP mailer.
type NotificationConsumer struct {
	notifier service.Notifier
	reader   messageReader
	log      *slog.Logger
}

func NewNotificationConsumer(notifier service.Notifier, log *slog.Logger, groupID string, brokers ...string) *NotificationConsumer {
	if groupID == "" {
		groupID = DefaultGroupID
	}
	if log == nil {
		log = slog.Default()
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    publisher.NotificationsTopic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &NotificationConsumer{notifier: notifier, reader: r, log: log}
}

// Run blocks until ctx is cancelled.
func (c *NotificationConsumer) Run(ctx context.Context) {
	c.log.Info("notification consumer started", "topic", publisher.NotificationsTopic)
	for {
		select {
		case <-ctx.Done():
			c.log.Info("notification consumer stopping")
			return
		default:
			c.processMessage(ctx)
		}
	}
}

func (c *NotificationConsumer) processMessage(ctx context.Context) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		c.log.Error("failed to read message", "error", err)
		return
	}

	if err := c.handle(ctx, msg); err != nil {
		// Delivery is best effort; the offset is already committed.
		c.log.Warn("skipping notification",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
			"error", err)
	}
}

func (c *NotificationConsumer) handle(ctx context.Context, msg kafka.Message) error {
	var event domain.OrderNotification
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if event.Kind == "" {
		event.Kind = domain.NotificationKind(headerValue(msg, publisher.EventTypeHeader))
	}
	if event.Order == nil {
		return fmt.Errorf("%s event without order", event.Kind)
	}

	if err := service.Send(ctx, c.notifier, event.Kind, event.Order); err != nil {
		return fmt.Errorf("failed to send %s for order %s: %w", event.Kind, event.Order.ID, err)
	}

	c.log.Info("notification sent",
		"kind", string(event.Kind),
		"order_id", event.Order.ID.String())
	return nil
}

func (c *NotificationConsumer) Close() error {
	return c.reader.Close()
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
