package kafka

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

func TestNewOrderPlacedEvent(t *testing.T) {
	order := domain.Order{
		ID:         42,
		CustomerID: 7,
		OrderDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 3},
			{ProductID: 11, Quantity: 1},
		},
	}

	event := NewOrderPlacedEvent(order)

	if event.EventType != EventTypeOrderPlaced {
		t.Fatalf("expected event type %s, got %s", EventTypeOrderPlaced, event.EventType)
	}
	if event.EventID == "" {
		t.Fatal("expected non-empty event id")
	}
	if event.OrderID != 42 || event.CustomerID != 7 {
		t.Fatalf("unexpected event identifiers: %+v", event)
	}
	if len(event.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(event.Items))
	}
	if event.Items[0].ProductID != 10 || event.Items[0].Quantity != 3 {
		t.Fatalf("unexpected first item: %+v", event.Items[0])
	}
}

func TestNewOrderPlacedEvent_UniqueEventIDs(t *testing.T) {
	order := domain.Order{ID: 1, CustomerID: 1, OrderDate: time.Now()}

	first := NewOrderPlacedEvent(order)
	second := NewOrderPlacedEvent(order)

	if first.EventID == second.EventID {
		t.Fatal("expected unique event ids for separate publications")
	}
}
