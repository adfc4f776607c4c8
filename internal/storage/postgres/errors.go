package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeUniqueViolation     = "23505"
)

// mapConstraintError переводит нарушения ограничений PostgreSQL в доменные ошибки.
// Внешние ключи — последняя линия обороны: проверка ссылок на уровне сервиса
// может устареть между валидацией и вставкой.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgCodeForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "order_customer_fk", "customer_account_customer_fk":
			return domain.ErrCustomerNotFound
		case "order_item_product_fk":
			return domain.ErrProductNotFound
		case "order_item_order_fk":
			return domain.ErrOrderNotFound
		}
	case pgCodeUniqueViolation:
		switch pgErr.ConstraintName {
		case "customer_email_key":
			return domain.ErrEmailTaken
		case "customer_account_username_key":
			return domain.ErrUsernameTaken
		}
	}

	return err
}
