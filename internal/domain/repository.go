package domain

import "context"

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента и возвращает присвоенный идентификатор.
	Create(ctx context.Context, customer Customer) (int64, error)
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (Customer, error)
	// Update перезаписывает имя, email и телефон клиента.
	Update(ctx context.Context, customer Customer) error
	// Delete удаляет клиента или возвращает ErrCustomerNotFound.
	Delete(ctx context.Context, id int64) error
}

// AccountRepository описывает требования к хранилищу учётных записей.
type AccountRepository interface {
	Create(ctx context.Context, account CustomerAccount) (int64, error)
	Get(ctx context.Context, id int64) (CustomerAccount, error)
	// Update перезаписывает только username и password: привязка
	// к клиенту после создания не меняется.
	Update(ctx context.Context, account CustomerAccount) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Create(ctx context.Context, product Product) (int64, error)
	Get(ctx context.Context, id int64) (Product, error)
	// List возвращает все товары каталога в порядке идентификаторов.
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет шапку заказа и все его позиции как единое целое:
	// либо фиксируются все строки, либо ни одной. Возвращает идентификатор заказа.
	Create(ctx context.Context, order Order) (int64, error)
	// Get возвращает заказ с позициями в порядке добавления или ErrOrderNotFound.
	// Читатель никогда не видит частично записанный заказ.
	Get(ctx context.Context, id int64) (Order, error)
}
