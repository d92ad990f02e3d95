package service

import (
	"context"

	"yatube/internal/domains/group"
	"yatube/internal/domains/post/model"
	"yatube/internal/shared/forms"
	"yatube/internal/shared/pagination"
)

// ServiceInterface - Định nghĩa business logic methods.
// page arguments are the raw ?page= values; they are clamped, never rejected.
type ServiceInterface interface {
	Index(ctx context.Context, page string) (*pagination.Page[model.Post], error)

	// GroupPosts - Errors: group.ErrGroupNotFound
	GroupPosts(ctx context.Context, slug, page string) (*model.GroupPage, error)

	// Profile - viewerID 0 means anonymous. Errors: user.ErrUserNotFound
	Profile(ctx context.Context, username, page string, viewerID int64) (*model.ProfilePage, error)

	// Detail - Errors: ErrPostNotFound
	Detail(ctx context.Context, id int64) (*model.DetailPage, error)

	// Groups lists the choices of the post form
	Groups(ctx context.Context) ([]group.Group, error)

	Create(ctx context.Context, authorID int64, form model.PostForm) (*model.Post, forms.FieldErrors, error)

	// EditForm - Errors: ErrPostNotFound, ErrNotAuthor
	EditForm(ctx context.Context, id, viewerID int64) (*model.Post, error)

	// Update - Errors: ErrPostNotFound, ErrNotAuthor
	Update(ctx context.Context, id, viewerID int64, form model.PostForm) (*model.Post, forms.FieldErrors, error)

	// AddComment - Errors: ErrPostNotFound
	AddComment(ctx context.Context, postID, authorID int64, form model.CommentForm) (*model.Comment, forms.FieldErrors, error)

	// ProcessImage renders the thumbnail of the post's current image (background job)
	ProcessImage(ctx context.Context, postID int64) error
}

// FollowChecker is satisfied by follow.Repository
type FollowChecker interface {
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
}

// ObjectStorage is satisfied by *storage.MinIOStorage
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
