package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Create пишет шапку заказа и все позиции в одной транзакции.
// Любая ошибка откатывает всё: частично записанный заказ невозможен.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (_ int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO "order" (order_date, customer_id)
		VALUES ($1, $2)
		RETURNING id
	`, order.OrderDate, order.CustomerID).Scan(&orderID)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_item (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`, orderID, item.ProductID, item.Quantity); err != nil {
			if mapped := mapConstraintError(err); mapped != err {
				err = mapped
				return 0, err
			}
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create order: %w", err)
	}

	return orderID, nil
}

// Get читает шапку и позиции в одной read-only транзакции: параллельное
// размещение либо ещё не видно целиком, либо видно целиком.
func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withReadRetry(ctx, defaultReadRetry(), "order.get", func(ctx context.Context) (domain.Order, error) {
		tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
		if err != nil {
			return domain.Order{}, fmt.Errorf("begin read tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var order domain.Order
		err = tx.QueryRowContext(ctx, `
			SELECT id, order_date, customer_id
			FROM "order"
			WHERE id = $1
		`, id).Scan(&order.ID, &order.OrderDate, &order.CustomerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Order{}, domain.ErrOrderNotFound
			}
			return domain.Order{}, fmt.Errorf("select order: %w", err)
		}

		order.Items, err = loadItems(ctx, tx, order.ID)
		if err != nil {
			return domain.Order{}, err
		}

		if err := tx.Commit(); err != nil {
			return domain.Order{}, fmt.Errorf("commit read tx: %w", err)
		}

		return order, nil
	})
}

// loadItems возвращает позиции заказа в порядке вставки:
// id присваивается последовательностью, поэтому сортировка по нему стабильна.
func loadItems(ctx context.Context, tx *sql.Tx, orderID int64) ([]domain.OrderItem, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity
		FROM order_item
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
