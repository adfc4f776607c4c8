package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/storage/memory"
)

func TestProductRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	id, err := repo.Create(ctx, domain.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "Pen" {
		t.Fatalf("expected name Pen, got %s", stored.Name)
	}
	if !stored.Price.Equal(decimal.NewFromFloat(1.5)) {
		t.Fatalf("expected price 1.5, got %s", stored.Price)
	}
}

func TestProductRepository_ListOrdered(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	for _, name := range []string{"Pen", "Mug", "Lamp"} {
		if _, err := repo.Create(ctx, domain.Product{Name: name, Price: decimal.NewFromInt(1)}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].ID >= products[i].ID {
			t.Fatalf("expected ascending ids, got %d before %d", products[i-1].ID, products[i].ID)
		}
	}
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	repo := memory.NewProductRepository()
	err := repo.Update(context.Background(), domain.Product{ID: 404, Name: "Ghost"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
