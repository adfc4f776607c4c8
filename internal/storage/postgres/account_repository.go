package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository создаёт PostgreSQL-реализацию AccountRepository.
func NewAccountRepository(store *Store) domain.AccountRepository {
	return &accountRepository{db: store.DB()}
}

func (r *accountRepository) Create(ctx context.Context, account domain.CustomerAccount) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customer_account (username, password, customer_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, account.Username, account.Password, account.CustomerID).Scan(&id)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("insert customer account: %w", err)
	}

	return id, nil
}

func (r *accountRepository) Get(ctx context.Context, id int64) (domain.CustomerAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withReadRetry(ctx, defaultReadRetry(), "account.get", func(ctx context.Context) (domain.CustomerAccount, error) {
		var account domain.CustomerAccount
		err := r.db.QueryRowContext(ctx, `
			SELECT id, username, password, customer_id
			FROM customer_account
			WHERE id = $1
		`, id).Scan(&account.ID, &account.Username, &account.Password, &account.CustomerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.CustomerAccount{}, domain.ErrAccountNotFound
			}
			return domain.CustomerAccount{}, fmt.Errorf("select customer account: %w", err)
		}
		return account, nil
	})
}

func (r *accountRepository) Update(ctx context.Context, account domain.CustomerAccount) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Привязка к клиенту после создания не меняется.
	res, err := r.db.ExecContext(ctx, `
		UPDATE customer_account
		SET username = $1,
		    password = $2
		WHERE id = $3
	`, account.Username, account.Password, account.ID)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update customer account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM customer_account WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

var _ domain.AccountRepository = (*accountRepository)(nil)
