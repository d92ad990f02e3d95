package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"yatube/internal/domains/follow"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) follow.Repository {
	return &postgresRepository{pool: pool}
}

// Follow relies on the (user_id, author_id) unique constraint so concurrent
// requests cannot create duplicates
func (r *postgresRepository) Follow(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("insert follow: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, userID, authorID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}
