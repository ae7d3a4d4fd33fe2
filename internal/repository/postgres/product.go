package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/pkg/database"
	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
	"github.com/Divyeshhhh/steamy-sips/pkg/slug"
)

const productColumns = `
		p.id, p.name, p.description, p.category, p.price, p.calories,
		p.image_url, p.image_alt_text, p.created_at,
		COALESCE(AVG(r.rating), 0)::float8 AS average_rating`

const listProductsSQL = `SELECT` + productColumns + `
	FROM products p
	LEFT JOIN reviews r ON r.product_id = p.id
	GROUP BY p.id
	ORDER BY p.id`

const getProductSQL = `SELECT` + productColumns + `
	FROM products p
	LEFT JOIN reviews r ON r.product_id = p.id
	WHERE p.id = $1
	GROUP BY p.id`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// ListAll returns the whole catalog. Unrated products have AverageRating 0.
func (r *ProductRepository) ListAll(ctx context.Context) (products []domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "ListProducts", listProductsSQL)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products = []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// GetByID returns a single product.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (_ *domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "GetProduct", getProductSQL)
	defer func() {
		if errors.Is(err, apperrors.ErrNotFound) {
			end(nil)
			return
		}
		end(err)
	}()

	p, err := scanProduct(r.pool.QueryRow(ctx, getProductSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.Calories,
		&p.ImageURL,
		&p.ImageAltText,
		&p.CreatedAt,
		&p.AverageRating,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scan product: %w", err)
	}
	p.Slug = slug.Generate(p.Name)
	return p, nil
}
