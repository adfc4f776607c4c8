package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/metrics"
)

// expectedDelivery — фиксированная дата из контракта /order/{id}/track.
// Расчёт логистики вне зоны ответственности сервиса.
const expectedDelivery = "2024-10-10"

// ItemInput — входная позиция заказа от вызывающей стороны.
type ItemInput struct {
	ProductID int64
	Quantity  int32
}

// Service реализует размещение, чтение и отслеживание заказов
// поверх репозитория заказов и справочника каталога.
type Service struct {
	orders  domain.OrderRepository
	catalog domain.Catalog
	events  domain.EventPublisher
	metrics *metrics.OrderMetrics
	logger  *log.Entry
}

// NewService конструирует сервис с зависимостями.
// events и m могут быть nil: публикация событий и метрики опциональны.
func NewService(
	orders domain.OrderRepository,
	catalog domain.Catalog,
	events domain.EventPublisher,
	m *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		orders:  orders,
		catalog: catalog,
		events:  events,
		metrics: m,
		logger:  logger,
	}
}

// PlaceOrder размещает заказ: валидирует вход, проверяет ссылки на клиента
// и товары и создаёт шапку вместе со всеми позициями атомарно.
// Возвращает идентификатор нового заказа.
func (s *Service) PlaceOrder(ctx context.Context, customerID int64, orderDate time.Time, items []ItemInput) (int64, error) {
	order := domain.Order{
		CustomerID: customerID,
		OrderDate:  orderDate,
		Items:      make([]domain.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.metrics.OrderFailed()
		return 0, errors.Join(errs...)
	}

	exists, err := s.catalog.CustomerExists(ctx, customerID)
	if err != nil {
		s.metrics.OrderFailed()
		return 0, fmt.Errorf("check customer %d: %w", customerID, err)
	}
	if !exists {
		s.metrics.OrderFailed()
		return 0, fmt.Errorf("customer %d: %w", customerID, domain.ErrCustomerNotFound)
	}

	for _, item := range order.Items {
		exists, err := s.catalog.ProductExists(ctx, item.ProductID)
		if err != nil {
			s.metrics.OrderFailed()
			return 0, fmt.Errorf("check product %d: %w", item.ProductID, err)
		}
		if !exists {
			s.metrics.OrderFailed()
			return 0, fmt.Errorf("product %d: %w", item.ProductID, domain.ErrProductNotFound)
		}
	}

	start := time.Now()
	// Репозиторий пишет шапку и позиции в одной транзакции; хранилище
	// дополнительно контролирует ссылки внешними ключами, поэтому товар,
	// удалённый между проверкой и вставкой, откатит весь заказ.
	orderID, err := s.orders.Create(ctx, order)
	if err != nil {
		s.metrics.OrderFailed()
		s.logger.WithError(err).WithField("customer_id", customerID).Error("failed to place order")
		return 0, err
	}
	s.metrics.OrderPlaced(time.Since(start))

	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"customer_id": customerID,
		"items":       len(order.Items),
	}).Info("order placed")

	s.publishPlaced(ctx, orderID, order)

	return orderID, nil
}

// GetOrder возвращает заказ с разрешённым именем клиента и названиями товаров.
// Позиции идут в порядке добавления.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (domain.OrderView, error) {
	start := time.Now()

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.OrderView{}, err
	}

	customerName, err := s.catalog.GetCustomerName(ctx, order.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			// Заказ ссылается на несуществующего клиента: повреждение данных.
			s.logger.WithFields(log.Fields{
				"order_id":    orderID,
				"customer_id": order.CustomerID,
			}).Error("order references missing customer")
			return domain.OrderView{}, fmt.Errorf("order %d references customer %d: %w", orderID, order.CustomerID, domain.ErrIntegrity)
		}
		return domain.OrderView{}, fmt.Errorf("resolve customer %d: %w", order.CustomerID, err)
	}

	view := domain.OrderView{
		OrderDate:    order.OrderDate,
		CustomerName: customerName,
		Items:        make([]domain.OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		productName, err := s.catalog.GetProductName(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				s.logger.WithFields(log.Fields{
					"order_id":   orderID,
					"item_id":    item.ID,
					"product_id": item.ProductID,
				}).Error("order item references missing product")
				return domain.OrderView{}, fmt.Errorf("order %d references product %d: %w", orderID, item.ProductID, domain.ErrIntegrity)
			}
			return domain.OrderView{}, fmt.Errorf("resolve product %d: %w", item.ProductID, err)
		}
		view.Items = append(view.Items, domain.OrderItemView{
			ProductName: productName,
			Quantity:    item.Quantity,
		})
	}

	s.metrics.OrderRetrieved(time.Since(start))
	return view, nil
}

// TrackOrder возвращает дату заказа и ожидаемую дату доставки.
func (s *Service) TrackOrder(ctx context.Context, orderID int64) (domain.OrderTracking, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.OrderTracking{}, err
	}
	return domain.OrderTracking{
		OrderDate:        order.OrderDate,
		ExpectedDelivery: expectedDelivery,
	}, nil
}

// publishPlaced отправляет событие о размещённом заказе.
// Заказ уже зафиксирован, поэтому ошибка публикации только логируется.
func (s *Service) publishPlaced(ctx context.Context, orderID int64, order domain.Order) {
	if s.events == nil {
		return
	}
	order.ID = orderID
	if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to publish order placed event")
		return
	}
	s.metrics.EventPublished()
}
