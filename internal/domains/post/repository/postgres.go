package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"yatube/internal/domains/post/model"
	"yatube/internal/shared/utils"
)

const foreignKeyViolation = "23503"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const postSelect = `
	SELECT
		p.id, p.text, p.created_at,
		p.author_id, u.username, u.first_name, u.last_name,
		p.group_id, COALESCE(g.slug, ''), COALESCE(g.title, ''),
		COALESCE(p.image_key, ''), COALESCE(p.image_url, ''), COALESCE(p.thumbnail_url, ''),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Text, &p.CreatedAt,
		&p.AuthorID, &p.AuthorUsername, &p.AuthorFirstName, &p.AuthorLastName,
		&p.GroupID, &p.GroupSlug, &p.GroupTitle,
		&p.ImageKey, &p.ImageURL, &p.ThumbnailURL,
		&p.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func buildWhere(filter model.Filter) *utils.WhereBuilder {
	w := &utils.WhereBuilder{}
	if filter.GroupID != 0 {
		w.Add("p.group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != 0 {
		w.Add("p.author_id = ?", filter.AuthorID)
	}
	if filter.FollowerID != 0 {
		w.Add("p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = ?)", filter.FollowerID)
	}
	return w
}

// ========================================
// POSTS
// ========================================

func (r *postgresRepository) List(ctx context.Context, filter model.Filter, limit, offset int) ([]model.Post, error) {
	w := buildWhere(filter)
	query := fmt.Sprintf("%s%s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d",
		postSelect, w.SQL(), w.Next(), w.Next()+1)

	rows, err := r.pool.Query(ctx, query, w.Args(limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	w := buildWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts p"+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (text, author_id, group_id, image_key, image_url)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, p.Text, p.AuthorID, p.GroupID, p.ImageKey, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET text = $2,
		    group_id = $3,
		    image_key = NULLIF($4, ''),
		    image_url = NULLIF($5, ''),
		    thumbnail_url = NULLIF($6, '')
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, p.ID, p.Text, p.GroupID, p.ImageKey, p.ImageURL, p.ThumbnailURL)
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) SetThumbnail(ctx context.Context, id int64, imageKey, url string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET thumbnail_url = $3 WHERE id = $1 AND image_key = $2`,
		id, imageKey, url,
	)
	if err != nil {
		return false, fmt.Errorf("set thumbnail for post %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ========================================
// COMMENTS
// ========================================

func (r *postgresRepository) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorUsername, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postgresRepository) CreateComment(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, c.PostID, c.AuthorID, c.Text).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation && pgErr.ConstraintName == "comments_post_id_fkey" {
			return model.ErrPostNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}
