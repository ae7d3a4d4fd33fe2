package postgres

import (
	"context"
	"fmt"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/pkg/database"
)

const listCommentsSQL = `
	SELECT id, user_id, review_id, parent_comment_id, text, created_at
	FROM comments
	WHERE review_id = ANY($1)
	ORDER BY created_at ASC, id ASC`

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	pool database.DBTX
}

// NewCommentRepository creates a new PostgreSQL-backed comment repository.
func NewCommentRepository(pool database.DBTX) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// ListByReviews loads the comments of several reviews in one round trip.
func (r *CommentRepository) ListByReviews(ctx context.Context, reviewIDs []int64) (comments []domain.Comment, err error) {
	comments = []domain.Comment{}
	if len(reviewIDs) == 0 {
		return comments, nil
	}

	ctx, end := database.TraceQuery(ctx, "ListComments", listCommentsSQL)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, listCommentsSQL, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c      domain.Comment
			parent *int64
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.ReviewID, &parent, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		c.Parent = domain.ParentFromNullable(parent)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}
	return comments, nil
}
