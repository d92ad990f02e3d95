package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/domains/user"
	"yatube/internal/shared/forms"
)

// DefaultBcryptCost: balance giữa security và performance
const DefaultBcryptCost = 12

type userService struct {
	repo user.Repository

	bcryptCost int
}

// NewUserService creates the service; cost <= 0 selects DefaultBcryptCost
func NewUserService(repo user.Repository, cost int) user.Service {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	return &userService{repo: repo, bcryptCost: cost}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới
func (s *userService) Register(ctx context.Context, form user.SignupForm) (*user.User, forms.FieldErrors, error) {
	// 1. VALIDATE INPUT
	form, fieldErrs, err := form.Clean()
	if err != nil {
		return nil, nil, err
	}
	if fieldErrs.Any() {
		return nil, fieldErrs, nil
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(form.Password1), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. PERSIST; the unique index decides races between identical signups
	newUser := &user.User{
		Username:     form.Username,
		PasswordHash: string(passwordHash),
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil, forms.FieldErrors{"username": "A user with that username already exists."}, nil
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Int64("user_id", newUser.ID).Str("username", newUser.Username).Msg("User registered")
	return newUser, nil, nil
}

// Authenticate xác thực user
func (s *userService) Authenticate(ctx context.Context, form user.LoginForm) (*user.User, forms.FieldErrors, error) {
	form, fieldErrs, err := form.Clean()
	if err != nil {
		return nil, nil, err
	}
	if fieldErrs.Any() {
		return nil, fieldErrs, nil
	}

	u, err := s.repo.FindByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Không expose "user not found"
			return nil, nil, user.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	// bcrypt.CompareHashAndPassword is constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(form.Password)); err != nil {
		return nil, nil, user.ErrInvalidCredentials
	}

	return u, nil, nil
}

// ChangePassword cập nhật password của user đang đăng nhập
func (s *userService) ChangePassword(ctx context.Context, userID int64, form user.PasswordChangeForm) (forms.FieldErrors, error) {
	form, fieldErrs, err := form.Clean()
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if form.OldPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(form.OldPassword)); err != nil {
			fieldErrs.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
		}
	}
	if fieldErrs.Any() {
		return fieldErrs, nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword1), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, string(passwordHash)); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}

	log.Info().Int64("user_id", u.ID).Msg("Password changed")
	return nil, nil
}

// ========================================
// LOOKUPS
// ========================================

func (s *userService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.repo.FindByUsername(ctx, username)
}
