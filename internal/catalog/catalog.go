package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

// Service — тонкая читающая прослойка над клиентами и товарами.
// Сервис заказов ходит в справочник только через неё и никогда не пишет.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
}

// New создаёт справочник поверх репозиториев клиентов и товаров.
func New(customers domain.CustomerRepository, products domain.ProductRepository) *Service {
	return &Service{customers: customers, products: products}
}

// CustomerExists сообщает, существует ли клиент с данным идентификатором.
func (s *Service) CustomerExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.customers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup customer %d: %w", id, err)
	}
	return true, nil
}

// GetCustomerName возвращает имя клиента или ErrCustomerNotFound.
func (s *Service) GetCustomerName(ctx context.Context, id int64) (string, error) {
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return customer.Name, nil
}

// ProductExists сообщает, существует ли товар с данным идентификатором.
func (s *Service) ProductExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup product %d: %w", id, err)
	}
	return true, nil
}

// GetProductName возвращает название товара или ErrProductNotFound.
func (s *Service) GetProductName(ctx context.Context, id int64) (string, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return product.Name, nil
}

var _ domain.Catalog = (*Service)(nil)
