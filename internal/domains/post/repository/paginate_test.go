package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domains/post/model"
	"yatube/internal/domains/post/repository"
)

// listingRepo serves Count/List from a slice; other methods are unused
type listingRepo struct {
	repository.RepositoryInterface
	posts     []model.Post
	countErr  error
	listCalls int
	gotLimit  int
	gotOffset int
}

func (r *listingRepo) Count(context.Context, model.Filter) (int64, error) {
	return int64(len(r.posts)), r.countErr
}

func (r *listingRepo) List(_ context.Context, _ model.Filter, limit, offset int) ([]model.Post, error) {
	r.listCalls++
	r.gotLimit, r.gotOffset = limit, offset
	end := offset + limit
	if end > len(r.posts) {
		end = len(r.posts)
	}
	return r.posts[offset:end], nil
}

func postsWithIDs(n int) []model.Post {
	out := make([]model.Post, n)
	for i := range out {
		out[i].ID = int64(n - i)
	}
	return out
}

func TestPaginate_ClampsPastLastPage(t *testing.T) {
	repo := &listingRepo{posts: postsWithIDs(13)}

	page, err := repository.Paginate(context.Background(), repo, model.Filter{}, "99", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.Len())
	assert.Equal(t, 10, repo.gotLimit)
	assert.Equal(t, 10, repo.gotOffset)
}

func TestPaginate_EmptySkipsList(t *testing.T) {
	repo := &listingRepo{}

	page, err := repository.Paginate(context.Background(), repo, model.Filter{FollowerID: 7}, "abc", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.Len())
	assert.Zero(t, repo.listCalls)
}

func TestPaginate_CountError(t *testing.T) {
	repo := &listingRepo{countErr: errors.New("db down")}

	_, err := repository.Paginate(context.Background(), repo, model.Filter{}, "1", 10)
	assert.EqualError(t, err, "db down")
}
