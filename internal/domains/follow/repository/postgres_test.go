package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domains/follow/repository"
	"yatube/internal/domains/user"
	userRepo "yatube/internal/domains/user/repository"
	"yatube/internal/infrastructure/database"
)

func TestPostgres_FollowIsIdempotent(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, (&database.PostgresDB{Pool: pool}).Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE follows, comments, posts, groups, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	users := userRepo.NewPostgresRepository(pool)
	leo := &user.User{Username: "leo", PasswordHash: "x"}
	ann := &user.User{Username: "ann", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, leo))
	require.NoError(t, users.Create(ctx, ann))

	repo := repository.NewPostgresRepository(pool)

	created, err := repo.Follow(ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Follow(ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.False(t, created)

	following, err := repo.IsFollowing(ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = repo.IsFollowing(ctx, leo.ID, ann.ID)
	require.NoError(t, err)
	assert.False(t, following)

	removed, err := repo.Unfollow(ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unfollow(ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
