package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/storage/memory"
)

func newOrder() domain.Order {
	return domain.Order{
		CustomerID: 1,
		OrderDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 3},
			{ProductID: 11, Quantity: 1},
		},
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	id, err := repo.Create(ctx, newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != id {
		t.Fatalf("expected id %d, got %d", id, stored.ID)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
	for _, item := range stored.Items {
		if item.ID <= 0 {
			t.Fatalf("expected assigned item id, got %d", item.ID)
		}
		if item.OrderID != id {
			t.Fatalf("expected item bound to order %d, got %d", id, item.OrderID)
		}
	}
}

func TestOrderRepository_ItemsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	id, err := repo.Create(ctx, newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Items[0].ProductID != 10 || stored.Items[1].ProductID != 11 {
		t.Fatalf("expected items in insertion order, got %+v", stored.Items)
	}
}

func TestOrderRepository_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	id, err := repo.Create(ctx, newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	first.Items[0].Quantity = 999

	second, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if second.Items[0].Quantity != 3 {
		t.Fatalf("stored order mutated through returned copy: %+v", second.Items[0])
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := memory.NewOrderRepository()
	if _, err := repo.Get(context.Background(), 404); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
