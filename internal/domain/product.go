package domain

import "github.com/shopspring/decimal"

// Product — товар каталога. Сервис заказов читает товары, но никогда не меняет.
type Product struct {
	ID   int64
	Name string
	// Price хранится как точное десятичное число (NUMERIC в базе),
	// чтобы не накапливать ошибки округления float.
	Price decimal.Decimal
}

// Validate проверяет обязательные поля товара.
func (p *Product) Validate() []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrPriceNegative)
	}
	return errs
}
