// Package notify publishes order events to Kafka. Delivery is best-effort:
// the order engine treats a failed publish as a logged warning, never as a
// reason to roll anything back.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

const publishTimeout = 10 * time.Second

// OrderEvent is the wire shape published for both placement and status changes.
type OrderEvent struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	OrderID    int64       `json:"order_id"`
	StoreID    int64       `json:"store_id"`
	Status     string      `json:"status"`
	OldStatus  string      `json:"old_status,omitempty"`
	Total      int64       `json:"total"`
	Items      []EventItem `json:"items"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventItem mirrors one order line in the event payload.
type EventItem struct {
	VariationID int64 `json:"variation_id"`
	Quantity    int32 `json:"quantity"`
	UnitPrice   int64 `json:"unit_price"`
}

const (
	eventTypePlaced        = "order.placed"
	eventTypeStatusChanged = "order.status_changed"
)

var _ ports.Notifier = (*KafkaNotifier)(nil)

// KafkaNotifier writes order events to a Kafka topic.
type KafkaNotifier struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaNotifier builds a notifier against the given brokers and topic.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaNotifier{writer: writer, logger: logger}
}

func (n *KafkaNotifier) OrderPlaced(ctx context.Context, order *domain.Order) error {
	event := eventFromOrder(order, eventTypePlaced)
	return n.publish(ctx, event)
}

func (n *KafkaNotifier) OrderStatusChanged(ctx context.Context, order *domain.Order, old domain.Status) error {
	event := eventFromOrder(order, eventTypeStatusChanged)
	event.OldStatus = string(old)
	return n.publish(ctx, event)
}

func (n *KafkaNotifier) publish(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logWarn(ctx, "failed to marshal order event", err, event)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: payload,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logWarn(ctx, "failed to publish order event", err, event)
		return err
	}
	if n.logger != nil {
		n.logger.LogAttrs(ctx, slog.LevelInfo, "order event published",
			slog.String("event.id", event.EventID),
			slog.String("event.type", event.Type),
			slog.Int64("order.id", event.OrderID))
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (n *KafkaNotifier) Close() error {
	if n.writer != nil {
		return n.writer.Close()
	}
	return nil
}

func (n *KafkaNotifier) logWarn(ctx context.Context, msg string, err error, event OrderEvent) {
	if n.logger == nil {
		return
	}
	n.logger.LogAttrs(ctx, slog.LevelWarn, msg,
		slog.String("event.type", event.Type),
		slog.Int64("order.id", event.OrderID),
		slog.String("error", err.Error()))
}

func eventFromOrder(order *domain.Order, eventType string) OrderEvent {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		StoreID:    order.StoreID,
		Status:     string(order.Status),
		Total:      order.Total,
		Items:      items,
		OccurredAt: time.Now().UTC(),
	}
}
