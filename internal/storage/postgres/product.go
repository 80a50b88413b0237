package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteemart/storefront/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products from the catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, image_url FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

// GetByID returns a single product by its identifier. It returns
// product.ErrNotFound when no matching product exists.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, price, image_url FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// Upsert inserts the product or updates the existing row. Used by the seed
// and ingest tools.
func (r *ProductRepository) Upsert(ctx context.Context, p product.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, price, image_url)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, price = EXCLUDED.price,
		     image_url = EXCLUDED.image_url, updated_at = now()`,
		p.ID, p.Name, p.Price, p.ImageURL)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.ID, err)
	}
	return nil
}
