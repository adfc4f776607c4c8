package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[int64]domain.Product),
	}
}

// Create сохраняет новый товар, присваивая следующий идентификатор.
func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	r.items[product.ID] = product
	return product.ID, nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(_ context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// List возвращает все товары, отсортированные по идентификатору.
func (r *productRepositoryInMemory) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update перезаписывает название и цену существующего товара.
func (r *productRepositoryInMemory) Update(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.items[product.ID] = product
	return nil
}

// Delete удаляет товар или возвращает ErrProductNotFound.
func (r *productRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
