// Package kafka publishes order status notifications to a Kafka topic.
// Delivery is at-least-once: the relay job retries any message it could not
// hand over, so consumers must deduplicate on the message key.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"agrimarket/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// statusChangedPayload is the wire format of a status notification.
type statusChangedPayload struct {
	OrderID        string    `json:"order_id"`
	BuyerID        string    `json:"buyer_id"`
	DeliveryMethod string    `json:"delivery_method"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Notifier implements ports.Notifier on a Kafka topic.
type Notifier struct {
	writer *kafka.Writer
}

// NewNotifier creates a notifier publishing to the given brokers and topic.
// Messages are keyed by order ID, so all notifications for one order land on
// the same partition in transition order.
func NewNotifier(brokers []string, topic string) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// NotifyStatusChanged publishes one status change event.
func (n *Notifier) NotifyStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	payload := statusChangedPayload{
		OrderID:        event.OrderID.String(),
		BuyerID:        event.BuyerID.String(),
		DeliveryMethod: event.DeliveryMethod.String(),
		From:           event.From.String(),
		To:             event.To.String(),
		OccurredAt:     event.OccurredAt,
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OrderID),
		Value: value,
		Time:  time.Now().UTC(),
	})
}

// Close flushes and closes the underlying writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
