package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product (name, price)
		VALUES ($1, $2)
		RETURNING id
	`, product.Name, product.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withReadRetry(ctx, defaultReadRetry(), "product.get", func(ctx context.Context) (domain.Product, error) {
		var product domain.Product
		err := r.db.QueryRowContext(ctx, `
			SELECT id, name, price
			FROM product
			WHERE id = $1
		`, id).Scan(&product.ID, &product.Name, &product.Price)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Product{}, domain.ErrProductNotFound
			}
			return domain.Product{}, fmt.Errorf("select product: %w", err)
		}
		return product, nil
	})
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withReadRetry(ctx, defaultReadRetry(), "product.list", func(ctx context.Context) ([]domain.Product, error) {
		rows, err := r.db.QueryContext(ctx, `
			SELECT id, name, price
			FROM product
			ORDER BY id ASC
		`)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		defer rows.Close()

		products := make([]domain.Product, 0)
		for rows.Next() {
			var product domain.Product
			if err := rows.Scan(&product.ID, &product.Name, &product.Price); err != nil {
				return nil, fmt.Errorf("scan product row: %w", err)
			}
			products = append(products, product)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate product rows: %w", err)
		}

		return products, nil
	})
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE product
		SET name = $1,
		    price = $2
		WHERE id = $3
	`, product.Name, product.Price, product.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
