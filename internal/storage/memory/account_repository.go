package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// accountRepositoryInMemory — in-memory реализация AccountRepository.
type accountRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.CustomerAccount
}

// NewAccountRepository возвращает in-memory репозиторий учётных записей.
func NewAccountRepository() domain.AccountRepository {
	return &accountRepositoryInMemory{
		items: make(map[int64]domain.CustomerAccount),
	}
}

// Create сохраняет новую учётную запись, присваивая следующий идентификатор.
// Ссылку на клиента проверяет вызывающая сторона: репозиторий автономен.
func (r *accountRepositoryInMemory) Create(_ context.Context, account domain.CustomerAccount) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == account.Username {
			return 0, domain.ErrUsernameTaken
		}
	}

	r.nextID++
	account.ID = r.nextID
	r.items[account.ID] = account
	return account.ID, nil
}

// Get возвращает учётную запись или ErrAccountNotFound.
func (r *accountRepositoryInMemory) Get(_ context.Context, id int64) (domain.CustomerAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.items[id]
	if !ok {
		return domain.CustomerAccount{}, domain.ErrAccountNotFound
	}
	return account, nil
}

// Update перезаписывает username и password, не трогая привязку к клиенту.
func (r *accountRepositoryInMemory) Update(_ context.Context, account domain.CustomerAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	for id, existing := range r.items {
		if id != account.ID && existing.Username == account.Username {
			return domain.ErrUsernameTaken
		}
	}
	current.Username = account.Username
	current.Password = account.Password
	r.items[account.ID] = current
	return nil
}

// Delete удаляет учётную запись или возвращает ErrAccountNotFound.
func (r *accountRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.AccountRepository = (*accountRepositoryInMemory)(nil)
