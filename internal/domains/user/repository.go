package user

import "context"

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create inserts u and fills ID and CreatedAt.
	// Returns: ErrDuplicateUsername nếu username đã tồn tại
	Create(ctx context.Context, u *User) error

	// FindByID tìm user theo ID
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByUsername is an exact, case-sensitive match
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByUsername(ctx context.Context, username string) (*User, error)

	// UpdatePassword replaces the stored hash
	// Returns: ErrUserNotFound nếu không tìm thấy
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
