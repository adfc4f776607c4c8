package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// EventTypeOrderPlaced — заказ размещён и зафиксирован в хранилище.
	EventTypeOrderPlaced EventType = "order.placed"
)

// Topics для Kafka
const (
	TopicOrderEvents = "ecommerce.order.events"
)

// OrderItemPayload — позиция заказа в составе события.
type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	// EventID позволяет потребителям дедуплицировать доставки.
	EventID    string             `json:"event_id"`
	EventType  EventType          `json:"event_type"`
	OrderID    int64              `json:"order_id"`
	CustomerID int64              `json:"customer_id"`
	OrderDate  time.Time          `json:"order_date"`
	Items      []OrderItemPayload `json:"items"`
	Timestamp  time.Time          `json:"timestamp"`
}

// NewOrderPlacedEvent создает событие о размещённом заказе
func NewOrderPlacedEvent(order domain.Order) *OrderEvent {
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  EventTypeOrderPlaced,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		OrderDate:  order.OrderDate,
		Items:      items,
		Timestamp:  time.Now().UTC(),
	}
}
