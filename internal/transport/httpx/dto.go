package httpx

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// dateOnly — формат дат заказа во внешнем контракте.
const dateOnly = "2006-01-02"

// ErrorResponse — единый формат ошибки наружу.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse — подтверждение мутации.
type MessageResponse struct {
	Message string `json:"message"`
}

// CustomerRequest — тело создания/обновления клиента.
type CustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// CustomerResponse — представление клиента наружу. Идентификатор в теле
// не возвращается, он уже есть в пути запроса.
type CustomerResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// AccountRequest — тело создания/обновления учётной записи.
// customer_id учитывается только при создании.
type AccountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	CustomerID int64  `json:"customer_id"`
}

// AccountResponse — учётная запись с разрешённым именем клиента.
// Пароль наружу не отдаётся.
type AccountResponse struct {
	Username string `json:"username"`
	Customer string `json:"customer"`
}

// ProductRequest — тело создания/обновления товара.
// decimal принимает и число, и строку.
type ProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse — представление товара наружу.
type ProductResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItemRequest — позиция заказа во входном теле.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// OrderRequest — тело размещения заказа.
type OrderRequest struct {
	OrderDate  string             `json:"order_date"`
	CustomerID int64              `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderPlacedResponse — подтверждение размещения с идентификатором заказа.
type OrderPlacedResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// OrderItemResponse — позиция заказа с названием товара.
type OrderItemResponse struct {
	Product  string `json:"product"`
	Quantity int32  `json:"quantity"`
}

// OrderResponse — заказ с разрешёнными именами для выдачи наружу.
type OrderResponse struct {
	OrderDate string              `json:"order_date"`
	Customer  string              `json:"customer"`
	Items     []OrderItemResponse `json:"items"`
}

// TrackingResponse — ответ отслеживания заказа.
type TrackingResponse struct {
	OrderDate        string `json:"order_date"`
	ExpectedDelivery string `json:"expected_delivery"`
}

func newProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{Name: p.Name, Price: p.Price.InexactFloat64()}
}

func newOrderResponse(view domain.OrderView) OrderResponse {
	resp := OrderResponse{
		OrderDate: view.OrderDate.Format(dateOnly),
		Customer:  view.CustomerName,
		Items:     make([]OrderItemResponse, 0, len(view.Items)),
	}
	for _, item := range view.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			Product:  item.ProductName,
			Quantity: item.Quantity,
		})
	}
	return resp
}

// parseOrderDate принимает дату в формате YYYY-MM-DD или полный RFC3339.
func parseOrderDate(raw string) (time.Time, error) {
	if ts, err := time.Parse(dateOnly, raw); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, raw)
}
