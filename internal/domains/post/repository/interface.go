package repository

import (
	"context"

	"yatube/internal/domains/post/model"
)

// RepositoryInterface - Định nghĩa data access methods cho posts và comments
type RepositoryInterface interface {
	// List returns one page of posts matching filter, newest first (id breaks ties)
	List(ctx context.Context, filter model.Filter, limit, offset int) ([]model.Post, error)
	Count(ctx context.Context, filter model.Filter) (int64, error)

	// FindByID - Returns: ErrPostNotFound if not exists
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// Create inserts text, author, group and image columns; fills ID and CreatedAt
	Create(ctx context.Context, p *model.Post) error

	// Update rewrites text, group and image columns. CreatedAt never changes.
	Update(ctx context.Context, p *model.Post) error

	// SetThumbnail stores the thumbnail URL only while the post still has imageKey.
	// Returns false when the image was replaced in the meantime.
	SetThumbnail(ctx context.Context, id int64, imageKey, url string) (bool, error)

	ListComments(ctx context.Context, postID int64) ([]model.Comment, error)

	// CreateComment - Returns: ErrPostNotFound if the post does not exist
	CreateComment(ctx context.Context, c *model.Comment) error
}
