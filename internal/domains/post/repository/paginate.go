package repository

import (
	"context"

	"yatube/internal/domains/post/model"
	"yatube/internal/shared/pagination"
)

// Paginate counts the posts matching filter, clamps rawPage and loads that page
func Paginate(ctx context.Context, repo RepositoryInterface, filter model.Filter, rawPage string, perPage int) (*pagination.Page[model.Post], error) {
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	w := pagination.Resolve(rawPage, total, perPage)
	if total == 0 {
		return pagination.NewPage[model.Post](nil, w), nil
	}

	posts, err := repo.List(ctx, filter, w.Limit(), w.Offset())
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(posts, w), nil
}
