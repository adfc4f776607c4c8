package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	"github.com/vladislavdragonenkov/ecommerce/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения.
// Store равен nil при in-memory конфигурации.
type Dependencies struct {
	Customers domain.CustomerRepository
	Accounts  domain.AccountRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Store     *postgres.Store
	Logger    *log.Entry
}

// Close освобождает удерживаемые ресурсы (подключение к базе).
func (d *Dependencies) Close() {
	if d == nil || d.Store == nil {
		return
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.WithError(err).Warn("failed to close postgres store")
	}
}
