package domain

import "context"

// Catalog — справочник клиентов и товаров, доступный сервису заказов только на чтение.
type Catalog interface {
	// CustomerExists сообщает, существует ли клиент с данным идентификатором.
	CustomerExists(ctx context.Context, id int64) (bool, error)
	// GetCustomerName возвращает имя клиента или ErrCustomerNotFound.
	GetCustomerName(ctx context.Context, id int64) (string, error)
	// ProductExists сообщает, существует ли товар с данным идентификатором.
	ProductExists(ctx context.Context, id int64) (bool, error)
	// GetProductName возвращает название товара или ErrProductNotFound.
	GetProductName(ctx context.Context, id int64) (string, error)
}

// EventPublisher публикует доменные события наружу; потребитель должен быть
// готов к дубликатам. Публикация не участвует в транзакции размещения заказа.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order Order) error
}
