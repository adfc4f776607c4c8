package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu         sync.RWMutex
	nextID     int64
	nextItemID int64
	items      map[int64]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
	}
}

// Create сохраняет шапку заказа вместе с позициями под одной блокировкой,
// что даёт ту же атомарность, которую PostgreSQL обеспечивает транзакцией.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID

	// Сохраняем копию позиций, чтобы избежать непредсказуемых мутаций извне.
	stored := make([]domain.OrderItem, len(order.Items))
	copy(stored, order.Items)
	for i := range stored {
		r.nextItemID++
		stored[i].ID = r.nextItemID
		stored[i].OrderID = order.ID
	}
	order.Items = stored

	r.items[order.ID] = order
	return order.ID, nil
}

// Get возвращает заказ с позициями в порядке добавления или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	result := order
	result.Items = make([]domain.OrderItem, len(order.Items))
	copy(result.Items, order.Items)
	return result, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
