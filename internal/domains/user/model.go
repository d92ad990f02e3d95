package user

import (
	"strings"
	"time"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DisplayName is "first last", or the username when both are empty
func (u *User) DisplayName() string {
	return DisplayName(u.Username, u.FirstName, u.LastName)
}

// DisplayName is shared with read models that carry joined user columns
func DisplayName(username, firstName, lastName string) string {
	full := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if full == "" {
		return username
	}
	return full
}
