package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[int64]domain.Customer),
	}
}

// Create сохраняет нового клиента, присваивая следующий идентификатор.
func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == customer.Email {
			return 0, domain.ErrEmailTaken
		}
	}

	r.nextID++
	customer.ID = r.nextID
	r.items[customer.ID] = customer
	return customer.ID, nil
}

// Get возвращает клиента или ErrCustomerNotFound, если его нет.
func (r *customerRepositoryInMemory) Get(_ context.Context, id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// Update перезаписывает имя, email и телефон существующего клиента.
func (r *customerRepositoryInMemory) Update(_ context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	for id, existing := range r.items {
		if id != customer.ID && existing.Email == customer.Email {
			return domain.ErrEmailTaken
		}
	}
	r.items[customer.ID] = customer
	return nil
}

// Delete удаляет клиента или возвращает ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
