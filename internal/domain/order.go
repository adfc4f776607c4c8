package domain

import "time"

// OrderItem представляет одну позицию заказа: ссылка на товар и количество.
type OrderItem struct {
	// ID присваивается хранилищем и неизменяем после вставки.
	ID int64
	// OrderID — ссылка на заказ-владелец.
	OrderID int64
	// ProductID — ссылка на товар из каталога.
	ProductID int64
	// Quantity — количество единиц товара, строго положительное.
	Quantity int32
}

// Order агрегирует шапку заказа и его позиции.
// После размещения заказ неизменяем: операций обновления или отмены нет.
type Order struct {
	ID         int64
	CustomerID int64
	OrderDate  time.Time
	Items      []OrderItem
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.OrderDate.IsZero() {
		errs = append(errs, ErrOrderDateRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	for _, item := range o.Items {
		if item.ProductID <= 0 {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}

	return errs
}

// OrderView — представление заказа для выдачи наружу: имя клиента
// и названия товаров уже разрешены по сохранённым ссылкам.
type OrderView struct {
	OrderDate    time.Time
	CustomerName string
	Items        []OrderItemView
}

// OrderItemView — позиция заказа с разрешённым названием товара.
type OrderItemView struct {
	ProductName string
	Quantity    int32
}

// OrderTracking — информация об отслеживании заказа.
type OrderTracking struct {
	OrderDate        time.Time
	ExpectedDelivery string
}
