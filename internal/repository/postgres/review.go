package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/pkg/database"
	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
)

const reviewColumns = `id, product_id, client_id, text, rating, created_at`

const listReviewsSQL = `
	SELECT ` + reviewColumns + `
	FROM reviews
	WHERE product_id = $1
	ORDER BY created_at DESC, id DESC`

const getReviewSQL = `
	SELECT ` + reviewColumns + `
	FROM reviews
	WHERE id = $1`

const countReviewsByMonthSQL = `
	SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, COUNT(*) AS total
	FROM reviews
	GROUP BY month
	ORDER BY month`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// ListByProduct returns every review of a product, newest first. Verified is
// left false; it is resolved against order history by the caller.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) (reviews []domain.Review, err error) {
	ctx, end := database.TraceQuery(ctx, "ListReviews", listReviewsSQL)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listReviewsSQL, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews = []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}

// GetByID returns a single review. Verified is left false.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (_ *domain.Review, err error) {
	ctx, end := database.TraceQuery(ctx, "GetReview", getReviewSQL)
	defer func() {
		if errors.Is(err, apperrors.ErrNotFound) {
			end(nil)
			return
		}
		end(err)
	}()

	rv, err := scanReview(r.pool.QueryRow(ctx, getReviewSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// CountByMonth returns the number of reviews per calendar month.
func (r *ReviewRepository) CountByMonth(ctx context.Context) (counts []domain.MonthlyReviewCount, err error) {
	ctx, end := database.TraceQuery(ctx, "CountReviewsByMonth", countReviewsByMonthSQL)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, countReviewsByMonthSQL)
	if err != nil {
		return nil, fmt.Errorf("count reviews by month: %w", err)
	}
	defer rows.Close()

	counts = []domain.MonthlyReviewCount{}
	for rows.Next() {
		var (
			month time.Time
			total int64
		)
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("scan monthly review count: %w", err)
		}
		counts = append(counts, domain.MonthlyReviewCount{Month: month.UTC(), Total: int(total)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly review counts: %w", err)
	}
	return counts, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(
		&rv.ID,
		&rv.ProductID,
		&rv.ClientID,
		&rv.Text,
		&rv.Rating,
		&rv.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rv, err
		}
		return rv, fmt.Errorf("scan review row: %w", err)
	}
	return rv, nil
}
