package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"yatube/internal/domains/group"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) group.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, g *group.Group) error {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, g.Title, g.Slug, g.Description).Scan(&g.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return group.ErrDuplicateSlug
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	query := `SELECT id, title, slug, description FROM groups WHERE slug = $1`
	return r.findOne(ctx, query, slug)
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*group.Group, error) {
	query := `SELECT id, title, slug, description FROM groups WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*group.Group, error) {
	var g group.Group
	err := r.pool.QueryRow(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, group.ErrGroupNotFound
		}
		return nil, fmt.Errorf("query group: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]group.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, slug, description FROM groups ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	groups, err := pgx.CollectRows(rows, pgx.RowToStructByName[group.Group])
	if err != nil {
		return nil, fmt.Errorf("scan groups: %w", err)
	}
	return groups, nil
}
