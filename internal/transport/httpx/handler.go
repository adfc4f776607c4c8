package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/service/order"
)

// Handler обслуживает JSON-фасад: CRUD справочников и поток заказов.
type Handler struct {
	customers domain.CustomerRepository
	accounts  domain.AccountRepository
	products  domain.ProductRepository
	catalog   domain.Catalog
	orders    *order.Service
	logger    *log.Entry
}

// NewHandler создаёт HTTP-обработчик со всеми зависимостями.
func NewHandler(
	customers domain.CustomerRepository,
	accounts domain.AccountRepository,
	products domain.ProductRepository,
	catalog domain.Catalog,
	orders *order.Service,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}
	return &Handler{
		customers: customers,
		accounts:  accounts,
		products:  products,
		catalog:   catalog,
		orders:    orders,
		logger:    logger,
	}
}

// --- Customer ---

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}

	customer := domain.Customer{Name: req.Name, Email: req.Email, Phone: req.PhoneNumber}
	if errs := customer.Validate(); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", errors.Join(errs...).Error())
		return
	}

	if _, err := h.customers.Create(r.Context(), customer); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Customer created successfully"})
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	customer, err := h.customers.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CustomerResponse{
		Name:        customer.Name,
		Email:       customer.Email,
		PhoneNumber: customer.Phone,
	})
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}

	customer := domain.Customer{ID: id, Name: req.Name, Email: req.Email, Phone: req.PhoneNumber}
	if errs := customer.Validate(); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", errors.Join(errs...).Error())
		return
	}

	if err := h.customers.Update(r.Context(), customer); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Customer updated successfully"})
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.customers.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Customer deleted successfully"})
}

// --- CustomerAccount ---

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}

	account := domain.CustomerAccount{
		Username:   req.Username,
		Password:   req.Password,
		CustomerID: req.CustomerID,
	}
	if errs := account.Validate(); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", errors.Join(errs...).Error())
		return
	}

	exists, err := h.catalog.CustomerExists(r.Context(), req.CustomerID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "not_found",
			fmt.Sprintf("customer %d not found", req.CustomerID))
		return
	}

	if _, err := h.accounts.Create(r.Context(), account); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Customer account created successfully"})
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	customerName, err := h.catalog.GetCustomerName(r.Context(), account.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			// Учётная запись ссылается на удалённого клиента.
			h.logger.WithFields(log.Fields{
				"account_id":  id,
				"customer_id": account.CustomerID,
			}).Error("account references missing customer")
			err = fmt.Errorf("account %d references customer %d: %w", id, account.CustomerID, domain.ErrIntegrity)
		}
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AccountResponse{Username: account.Username, Customer: customerName})
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", domain.ErrUsernameRequired.Error())
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", domain.ErrPasswordRequired.Error())
		return
	}

	if err := h.accounts.Update(r.Context(), domain.CustomerAccount{
		ID:       id,
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Customer account updated successfully"})
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.accounts.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Customer account deleted successfully"})
}

// --- Product ---

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}

	product := domain.Product{Name: req.Name, Price: req.Price}
	if errs := product.Validate(); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", errors.Join(errs...).Error())
		return
	}

	if _, err := h.products.Create(r.Context(), product); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Product created successfully"})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductResponse(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}

	product := domain.Product{ID: id, Name: req.Name, Price: req.Price}
	if errs := product.Validate(); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", errors.Join(errs...).Error())
		return
	}

	if err := h.products.Update(r.Context(), product); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product updated successfully"})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(products, func(p domain.Product, _ int) ProductResponse {
		return newProductResponse(p)
	}))
}

// --- Order ---

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request", "invalid JSON body")
		return
	}

	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed_request",
			"order_date must be YYYY-MM-DD or RFC3339")
		return
	}

	items := make([]order.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	orderID, err := h.orders.PlaceOrder(r.Context(), req.CustomerID, orderDate, items)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, OrderPlacedResponse{
		Message: "Order placed successfully",
		OrderID: orderID,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	view, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(view))
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	tracking, err := h.orders.TrackOrder(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TrackingResponse{
		OrderDate:        tracking.OrderDate.Format(dateOnly),
		ExpectedDelivery: tracking.ExpectedDelivery,
	})
}

// --- helpers ---

// pathID извлекает {id} из пути. При некорректном значении сам пишет 400.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "malformed_request", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// respondError переводит доменную ошибку в HTTP-статус.
// Внутренние ошибки логируются и наружу уходят без деталей.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case domain.IsIntegrity(err):
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("integrity violation")
		writeError(w, http.StatusInternalServerError, "integrity_error", "stored data is inconsistent")
	default:
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
