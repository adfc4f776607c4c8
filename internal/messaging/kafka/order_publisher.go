package kafka

import (
	"context"
	"strconv"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// OrderPublisher публикует доменные события заказов в Kafka.
type OrderPublisher struct {
	producer *Producer
}

// NewOrderPublisher создаёт publisher поверх producer.
func NewOrderPublisher(producer *Producer) *OrderPublisher {
	return &OrderPublisher{producer: producer}
}

// PublishOrderPlaced отправляет событие order.placed.
// Ключом служит идентификатор заказа: события одного заказа попадают в одну партицию.
func (p *OrderPublisher) PublishOrderPlaced(_ context.Context, order domain.Order) error {
	event := NewOrderPlacedEvent(order)
	return p.producer.PublishEvent(TopicOrderEvents, strconv.FormatInt(order.ID, 10), event)
}

var _ domain.EventPublisher = (*OrderPublisher)(nil)
