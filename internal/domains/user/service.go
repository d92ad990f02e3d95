package user

import (
	"context"

	"yatube/internal/shared/forms"
)

// Service định nghĩa business logic cho user domain
type Service interface {
	// Register validates the signup form and creates the account.
	// Invalid input (including a taken username) comes back as field errors.
	Register(ctx context.Context, form SignupForm) (*User, forms.FieldErrors, error)

	// Authenticate checks the login form against the stored password hash.
	// Errors: ErrInvalidCredentials
	Authenticate(ctx context.Context, form LoginForm) (*User, forms.FieldErrors, error)

	// ChangePassword checks the old password and stores the new one.
	// A wrong old password comes back as a field error.
	ChangePassword(ctx context.Context, userID int64, form PasswordChangeForm) (forms.FieldErrors, error)

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
