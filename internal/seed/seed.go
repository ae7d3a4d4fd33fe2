// Package seed populates an empty storefront database with a sample menu,
// reviews and threaded comments for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/pkg/database"
)

// Product is a catalog entry together with its reviews.
type Product struct {
	domain.Product
	Reviews []Review
}

// Review is a seeded review with its comment threads.
type Review struct {
	ClientID int64
	Rating   int
	Text     string
	Comments []Comment
}

// Comment is a seeded comment and its replies.
type Comment struct {
	UserID  int64
	Text    string
	Replies []Comment
}

// Summary counts the rows written by Run.
type Summary struct {
	Skipped  bool
	Products int
	Reviews  int
	Comments int
}

// Run inserts products in a single transaction. A database that already
// has products is left untouched. Rows are timestamped one minute apart
// starting at start so that ordering by created_at is deterministic.
func Run(ctx context.Context, db database.TxBeginner, products []Product, start time.Time, logger *slog.Logger) (Summary, error) {
	var existing int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&existing); err != nil {
		return Summary{}, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		logger.InfoContext(ctx, "catalog already seeded", slog.Int64("products", existing))
		return Summary{Skipped: true}, nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s := &seeder{tx: tx, clock: start}
	for _, p := range products {
		if err := s.product(ctx, p); err != nil {
			return Summary{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Summary{}, fmt.Errorf("commit seed: %w", err)
	}

	logger.InfoContext(ctx, "catalog seeded",
		slog.Int("products", s.sum.Products),
		slog.Int("reviews", s.sum.Reviews),
		slog.Int("comments", s.sum.Comments),
	)
	return s.sum, nil
}

type seeder struct {
	tx    pgx.Tx
	clock time.Time
	sum   Summary
}

func (s *seeder) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *seeder) product(ctx context.Context, p Product) error {
	var id int64
	err := s.tx.QueryRow(ctx,
		`INSERT INTO products (name, description, category, price, calories, image_url, image_alt_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.Name, p.Description, p.Category, p.Price, p.Calories, p.ImageURL, p.ImageAltText, s.tick(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	s.sum.Products++

	for _, r := range p.Reviews {
		if err := s.review(ctx, id, r); err != nil {
			return fmt.Errorf("product %q: %w", p.Name, err)
		}
	}
	return nil
}

func (s *seeder) review(ctx context.Context, productID int64, r Review) error {
	var id int64
	err := s.tx.QueryRow(ctx,
		`INSERT INTO reviews (product_id, client_id, text, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		productID, r.ClientID, r.Text, r.Rating, s.tick(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	s.sum.Reviews++

	for _, c := range r.Comments {
		if err := s.comment(ctx, id, nil, c); err != nil {
			return err
		}
	}
	return nil
}

// comment inserts c and its replies. parent is nil for top-level comments.
func (s *seeder) comment(ctx context.Context, reviewID int64, parent any, c Comment) error {
	var id int64
	err := s.tx.QueryRow(ctx,
		`INSERT INTO comments (user_id, review_id, parent_comment_id, text, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.UserID, reviewID, parent, c.Text, s.tick(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	s.sum.Comments++

	for _, reply := range c.Replies {
		if err := s.comment(ctx, reviewID, id, reply); err != nil {
			return err
		}
	}
	return nil
}
