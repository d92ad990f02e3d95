package follow

import (
	"context"

	"yatube/internal/domains/post/model"
	"yatube/internal/shared/pagination"
)

// Service defines the subscription operations
type Service interface {
	// Follow subscribes userID to username's posts.
	// Errors: user.ErrUserNotFound, ErrSelfFollow
	Follow(ctx context.Context, userID int64, username string) (changed bool, err error)

	// Unfollow - Errors: user.ErrUserNotFound
	Unfollow(ctx context.Context, userID int64, username string) (changed bool, err error)

	// Feed lists posts of every author userID follows, newest first
	Feed(ctx context.Context, userID int64, page string) (*pagination.Page[model.Post], error)
}
