package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vladislavdragonenkov/ecommerce/internal/catalog"
	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/service/order"
	"github.com/vladislavdragonenkov/ecommerce/internal/storage/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	server    *httptest.Server
	customers domain.CustomerRepository
	products  domain.ProductRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	customers := memory.NewCustomerRepository()
	accounts := memory.NewAccountRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()

	cat := catalog.New(customers, products)
	orderSvc := order.NewService(orders, cat, nil, nil, nil)
	handler := NewHandler(customers, accounts, products, cat, orderSvc, nil)

	server := httptest.NewServer(NewRouter(handler, nil, nil))
	t.Cleanup(server.Close)

	return &testEnv{server: server, customers: customers, products: products}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seedAnaWithPenAndMug готовит клиента Ana и товары Pen/Mug.
func seedAnaWithPenAndMug(t *testing.T, e *testEnv) (customerID, penID, mugID int64) {
	t.Helper()
	ctx := context.Background()

	customerID, err := e.customers.Create(ctx, domain.Customer{
		Name: "Ana", Email: "ana@example.com", Phone: "+1-555-0101",
	})
	require.NoError(t, err)

	penID, err = e.products.Create(ctx, domain.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5)})
	require.NoError(t, err)
	mugID, err = e.products.Create(ctx, domain.Product{Name: "Mug", Price: decimal.NewFromFloat(5.0)})
	require.NoError(t, err)
	return customerID, penID, mugID
}

func TestPlaceAndRetrieveOrder(t *testing.T) {
	env := newTestEnv(t)
	customerID, penID, mugID := seedAnaWithPenAndMug(t, env)

	resp := env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "2024-01-01",
		CustomerID: customerID,
		Items: []OrderItemRequest{
			{ProductID: penID, Quantity: 3},
			{ProductID: mugID, Quantity: 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	placed := decodeBody[OrderPlacedResponse](t, resp)
	require.Equal(t, "Order placed successfully", placed.Message)
	require.Positive(t, placed.OrderID)

	get := env.do(t, http.MethodGet, "/order/"+itoa(placed.OrderID), nil)
	require.Equal(t, http.StatusOK, get.StatusCode)

	view := decodeBody[OrderResponse](t, get)
	require.Equal(t, "2024-01-01", view.OrderDate)
	require.Equal(t, "Ana", view.Customer)
	require.Equal(t, []OrderItemResponse{
		{Product: "Pen", Quantity: 3},
		{Product: "Mug", Quantity: 1},
	}, view.Items)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	env := newTestEnv(t)
	customerID, _, _ := seedAnaWithPenAndMug(t, env)

	resp := env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "2024-01-01",
		CustomerID: customerID,
		Items:      []OrderItemRequest{},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, "validation_failed", body.Error)
}

func TestPlaceOrder_BadQuantity(t *testing.T) {
	env := newTestEnv(t)
	customerID, penID, _ := seedAnaWithPenAndMug(t, env)

	resp := env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "2024-01-01",
		CustomerID: customerID,
		Items:      []OrderItemRequest{{ProductID: penID, Quantity: 0}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	env := newTestEnv(t)
	_, penID, _ := seedAnaWithPenAndMug(t, env)

	resp := env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "2024-01-01",
		CustomerID: 999,
		Items:      []OrderItemRequest{{ProductID: penID, Quantity: 1}},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, "not_found", body.Error)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	customerID, _, _ := seedAnaWithPenAndMug(t, env)

	resp := env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "2024-01-01",
		CustomerID: customerID,
		Items:      []OrderItemRequest{{ProductID: 999, Quantity: 1}},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlaceOrder_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/order",
		bytes.NewBufferString(`{"order_date": `))
	require.NoError(t, err)
	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlaceOrder_BadDate(t *testing.T) {
	env := newTestEnv(t)
	customerID, penID, _ := seedAnaWithPenAndMug(t, env)

	resp := env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "not-a-date",
		CustomerID: customerID,
		Items:      []OrderItemRequest{{ProductID: penID, Quantity: 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrackOrder(t *testing.T) {
	env := newTestEnv(t)
	customerID, penID, _ := seedAnaWithPenAndMug(t, env)

	placed := decodeBody[OrderPlacedResponse](t, env.do(t, http.MethodPost, "/order", OrderRequest{
		OrderDate:  "2024-01-01",
		CustomerID: customerID,
		Items:      []OrderItemRequest{{ProductID: penID, Quantity: 2}},
	}))

	resp := env.do(t, http.MethodGet, "/order/"+itoa(placed.OrderID)+"/track", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tracking := decodeBody[TrackingResponse](t, resp)
	require.Equal(t, "2024-01-01", tracking.OrderDate)
	require.Equal(t, "2024-10-10", tracking.ExpectedDelivery)
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/order/424242", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomerCRUD(t *testing.T) {
	env := newTestEnv(t)

	create := env.do(t, http.MethodPost, "/customer", CustomerRequest{
		Name: "Bob", Email: "bob@example.com", PhoneNumber: "+1-555-0102",
	})
	require.Equal(t, http.StatusCreated, create.StatusCode)

	get := env.do(t, http.MethodGet, "/customer/1", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)
	got := decodeBody[CustomerResponse](t, get)
	require.Equal(t, CustomerResponse{Name: "Bob", Email: "bob@example.com", PhoneNumber: "+1-555-0102"}, got)

	update := env.do(t, http.MethodPut, "/customer/1", CustomerRequest{
		Name: "Bobby", Email: "bob@example.com", PhoneNumber: "+1-555-0102",
	})
	require.Equal(t, http.StatusOK, update.StatusCode)

	del := env.do(t, http.MethodDelete, "/customer/1", nil)
	require.Equal(t, http.StatusOK, del.StatusCode)

	missing := env.do(t, http.MethodGet, "/customer/1", nil)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestCustomerCreate_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/customer", CustomerRequest{Name: "NoEmail"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCustomerCreate_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(t, http.MethodPost, "/customer", CustomerRequest{
		Name: "Bob", Email: "bob@example.com", PhoneNumber: "+1",
	})
	require.Equal(t, http.StatusCreated, first.StatusCode)

	dup := env.do(t, http.MethodPost, "/customer", CustomerRequest{
		Name: "Rob", Email: "bob@example.com", PhoneNumber: "+2",
	})
	require.Equal(t, http.StatusConflict, dup.StatusCode)
}

func TestAccountCreate_ResolvesCustomer(t *testing.T) {
	env := newTestEnv(t)
	customerID, _, _ := seedAnaWithPenAndMug(t, env)

	create := env.do(t, http.MethodPost, "/customeraccount", AccountRequest{
		Username: "ana", Password: "secret", CustomerID: customerID,
	})
	require.Equal(t, http.StatusCreated, create.StatusCode)

	get := env.do(t, http.MethodGet, "/customeraccount/1", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)
	account := decodeBody[AccountResponse](t, get)
	require.Equal(t, AccountResponse{Username: "ana", Customer: "Ana"}, account)
}

func TestAccountCreate_UnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/customeraccount", AccountRequest{
		Username: "ghost", Password: "secret", CustomerID: 999,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductListAndGet(t *testing.T) {
	env := newTestEnv(t)
	seedAnaWithPenAndMug(t, env)

	list := env.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	products := decodeBody[[]ProductResponse](t, list)
	require.Equal(t, []ProductResponse{
		{Name: "Pen", Price: 1.5},
		{Name: "Mug", Price: 5.0},
	}, products)

	get := env.do(t, http.MethodGet, "/product/1", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)
	require.Equal(t, ProductResponse{Name: "Pen", Price: 1.5}, decodeBody[ProductResponse](t, get))
}

func TestPathID_Invalid(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/customer/abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
