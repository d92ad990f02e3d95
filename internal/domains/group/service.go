package group

import "context"

// Service defines business operations for groups
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Create(ctx context.Context, req CreateGroupRequest) (*Group, error)
}
