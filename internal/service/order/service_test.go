package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/ecommerce/internal/catalog"
	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/storage/memory"
)

type fixture struct {
	service    *Service
	orders     domain.OrderRepository
	customerID int64
	penID      int64
	mugID      int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()

	customerID, err := customers.Create(ctx, domain.Customer{
		Name: "Ana", Email: "ana@example.com", Phone: "+1-555-0101",
	})
	require.NoError(t, err)

	penID, err := products.Create(ctx, domain.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5)})
	require.NoError(t, err)
	mugID, err := products.Create(ctx, domain.Product{Name: "Mug", Price: decimal.NewFromFloat(5.0)})
	require.NoError(t, err)

	cat := catalog.New(customers, products)
	return &fixture{
		service:    NewService(orders, cat, nil, nil, nil),
		orders:     orders,
		customerID: customerID,
		penID:      penID,
		mugID:      mugID,
	}
}

func TestPlaceOrder_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	orderID, err := f.service.PlaceOrder(ctx, f.customerID, orderDate, []ItemInput{
		{ProductID: f.penID, Quantity: 2},
		{ProductID: f.mugID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Positive(t, orderID)

	view, err := f.service.GetOrder(ctx, orderID)
	require.NoError(t, err)

	want := domain.OrderView{
		OrderDate:    orderDate,
		CustomerName: "Ana",
		Items: []domain.OrderItemView{
			{ProductName: "Pen", Quantity: 2},
			{ProductName: "Mug", Quantity: 1},
		},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("order view mismatch (-want +got):\n%s", diff)
	}
}

func TestGetOrder_IdempotentRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orderID, err := f.service.PlaceOrder(ctx, f.customerID, time.Now().UTC(), []ItemInput{
		{ProductID: f.penID, Quantity: 1},
	})
	require.NoError(t, err)

	first, err := f.service.GetOrder(ctx, orderID)
	require.NoError(t, err)
	second, err := f.service.GetOrder(ctx, orderID)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated reads differ (-first +second):\n%s", diff)
	}
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), f.customerID, time.Now().UTC(), nil)
	require.ErrorIs(t, err, domain.ErrItemsRequired)
	require.True(t, domain.IsValidation(err))
}

func TestPlaceOrder_BadQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), f.customerID, time.Now().UTC(), []ItemInput{
		{ProductID: f.penID, Quantity: 0},
	})
	require.ErrorIs(t, err, domain.ErrItemQtyInvalid)
}

func TestPlaceOrder_ZeroDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), f.customerID, time.Time{}, []ItemInput{
		{ProductID: f.penID, Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrOrderDateRequired)
}

func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), 999, time.Now().UTC(), []ItemInput{
		{ProductID: f.penID, Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
	require.True(t, domain.IsNotFound(err))
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.PlaceOrder(ctx, f.customerID, time.Now().UTC(), []ItemInput{
		{ProductID: f.penID, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	// После отказа хранилище не содержит ни одного заказа.
	_, err = f.orders.Get(ctx, 1)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetOrder(context.Background(), 424242)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestTrackOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orderDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	orderID, err := f.service.PlaceOrder(ctx, f.customerID, orderDate, []ItemInput{
		{ProductID: f.penID, Quantity: 3},
	})
	require.NoError(t, err)

	tracking, err := f.service.TrackOrder(ctx, orderID)
	require.NoError(t, err)
	require.True(t, orderDate.Equal(tracking.OrderDate))
	require.Equal(t, "2024-10-10", tracking.ExpectedDelivery)
}

func TestTrackOrder_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.TrackOrder(context.Background(), 424242)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// stubPublisher фиксирует публикации и может имитировать сбой брокера.
type stubPublisher struct {
	published []domain.Order
	err       error
}

func (p *stubPublisher) PublishOrderPlaced(_ context.Context, order domain.Order) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, order)
	return nil
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	publisher := &stubPublisher{}
	f.service.events = publisher

	orderID, err := f.service.PlaceOrder(context.Background(), f.customerID, time.Now().UTC(), []ItemInput{
		{ProductID: f.penID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	require.Equal(t, orderID, publisher.published[0].ID)
	require.Equal(t, f.customerID, publisher.published[0].CustomerID)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	f.service.events = &stubPublisher{err: errors.New("broker down")}

	orderID, err := f.service.PlaceOrder(context.Background(), f.customerID, time.Now().UTC(), []ItemInput{
		{ProductID: f.penID, Quantity: 1},
	})
	require.NoError(t, err)

	// Заказ зафиксирован несмотря на сбой публикации.
	_, err = f.service.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
}
