package user

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"yatube/internal/shared/forms"
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	onlyDigits      = regexp.MustCompile(`^[0-9]+$`)
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
	// bcrypt input limit
	MaxPasswordBytes = 72

	msgRequired         = "This field is required."
	msgPasswordMismatch = "The two password fields didn't match."
)

// newPasswordRules checks a password about to be hashed
func newPasswordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(msgRequired),
		validation.RuneLength(MinPasswordLength, 0).Error("This password is too short. It must contain at least 8 characters."),
		validation.By(func(value interface{}) error {
			if len(value.(string)) > MaxPasswordBytes {
				return validation.NewError("password_too_long", "This password is too long. It must contain at most 72 bytes.")
			}
			return nil
		}),
		validation.By(func(value interface{}) error {
			if onlyDigits.MatchString(value.(string)) {
				return validation.NewError("password_numeric", "This password is entirely numeric.")
			}
			return nil
		}),
	}
}

// ========================================
// AUTH FORMS
// ========================================

// SignupForm - registration page (/auth/signup/)
type SignupForm struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Username  string `form:"username" json:"username"`
	Email     string `form:"email" json:"email"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
}

// Normalize trims the text inputs; passwords are kept verbatim
func (f SignupForm) Normalize() SignupForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return f
}

func (f SignupForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName, validation.Length(0, 150)),
		validation.Field(&f.LastName, validation.Length(0, 150)),
		validation.Field(&f.Username,
			validation.Required.Error(msgRequired),
			validation.RuneLength(1, MaxUsernameLength).Error("Ensure this value has at most 150 characters."),
			validation.Match(usernamePattern).Error("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."),
		),
		validation.Field(&f.Email,
			validation.When(f.Email != "", is.EmailFormat.Error("Enter a valid email address.")),
		),
		validation.Field(&f.Password1, newPasswordRules()...),
		validation.Field(&f.Password2,
			validation.Required.Error(msgRequired),
			validation.When(f.Password1 != "", validation.In(f.Password1).Error(msgPasswordMismatch)),
		),
	)
}

// Clean normalizes the form and returns it with its field errors
func (f SignupForm) Clean() (SignupForm, forms.FieldErrors, error) {
	f = f.Normalize()
	fe, err := forms.FromValidation(f.Validate())
	return f, fe, err
}

// LoginForm - /auth/login/
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required.Error(msgRequired)),
		validation.Field(&f.Password, validation.Required.Error(msgRequired)),
	)
}

func (f LoginForm) Clean() (LoginForm, forms.FieldErrors, error) {
	f.Username = strings.TrimSpace(f.Username)
	fe, err := forms.FromValidation(f.Validate())
	return f, fe, err
}

// PasswordChangeForm - /auth/password_change/
type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" json:"old_password"`
	NewPassword1 string `form:"new_password1" json:"new_password1"`
	NewPassword2 string `form:"new_password2" json:"new_password2"`
}

func (f PasswordChangeForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.OldPassword, validation.Required.Error(msgRequired)),
		validation.Field(&f.NewPassword1, newPasswordRules()...),
		validation.Field(&f.NewPassword2,
			validation.Required.Error(msgRequired),
			validation.When(f.NewPassword1 != "", validation.In(f.NewPassword1).Error(msgPasswordMismatch)),
		),
	)
}

// Clean keeps passwords verbatim
func (f PasswordChangeForm) Clean() (PasswordChangeForm, forms.FieldErrors, error) {
	fe, err := forms.FromValidation(f.Validate())
	return f, fe, err
}
