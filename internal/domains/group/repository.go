package group

import "context"

// Repository defines the interface for Group data access operations
type Repository interface {
	// Create inserts g and fills its ID
	// Errors: ErrDuplicateSlug if slug exists
	Create(ctx context.Context, g *Group) error

	// FindBySlug - Returns: ErrGroupNotFound if not exists
	FindBySlug(ctx context.Context, slug string) (*Group, error)

	// FindByID - Returns: ErrGroupNotFound if not exists
	FindByID(ctx context.Context, id int64) (*Group, error)

	// List returns every group ordered by title (post form select)
	List(ctx context.Context) ([]Group, error)
}
