package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customer (name, email, phone_number)
		VALUES ($1, $2, $3)
		RETURNING id
	`, customer.Name, customer.Email, customer.Phone).Scan(&id)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("insert customer: %w", err)
	}

	return id, nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withReadRetry(ctx, defaultReadRetry(), "customer.get", func(ctx context.Context) (domain.Customer, error) {
		var customer domain.Customer
		err := r.db.QueryRowContext(ctx, `
			SELECT id, name, email, phone_number
			FROM customer
			WHERE id = $1
		`, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Customer{}, domain.ErrCustomerNotFound
			}
			return domain.Customer{}, fmt.Errorf("select customer: %w", err)
		}
		return customer, nil
	})
}

func (r *customerRepository) Update(ctx context.Context, customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE customer
		SET name = $1,
		    email = $2,
		    phone_number = $3
		WHERE id = $4
	`, customer.Name, customer.Email, customer.Phone, customer.ID)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
