package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatube/internal/domains/user"
	"yatube/internal/shared/middleware"
	"yatube/internal/shared/response"
	"yatube/pkg/jwt"
)

const (
	signupTemplate             = "users/signup.html"
	loginTemplate              = "users/login.html"
	passwordChangeTemplate     = "users/password_change.html"
	passwordChangeDoneTemplate = "users/password_change_done.html"

	PasswordChangeDoneURL = "/auth/password_change/done/"

	invalidLoginMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

// CookieConfig describes the auth cookie written on login
type CookieConfig struct {
	Name   string
	Secure bool
}

// UserHandler xử lý HTTP requests cho user domain
type UserHandler struct {
	service    user.Service
	jwtManager *jwt.Manager
	cookie     CookieConfig
}

func NewUserHandler(service user.Service, jwtManager *jwt.Manager, cookie CookieConfig) *UserHandler {
	return &UserHandler{
		service:    service,
		jwtManager: jwtManager,
		cookie:     cookie,
	}
}

// ========================================
// SIGNUP
// ========================================

// SignupPage xử lý GET /auth/signup/
func (h *UserHandler) SignupPage(c *gin.Context) {
	response.HTML(c, http.StatusOK, signupTemplate, gin.H{"form": user.SignupForm{}})
}

// Signup xử lý POST /auth/signup/
func (h *UserHandler) Signup(c *gin.Context) {
	var form user.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debug().Err(err).Msg("Signup form bind failed")
	}

	created, fieldErrs, err := h.service.Register(c.Request.Context(), form)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if fieldErrs.Any() {
		form.Password1, form.Password2 = "", ""
		response.HTML(c, http.StatusBadRequest, signupTemplate, gin.H{"form": form, "errors": fieldErrs})
		return
	}

	middleware.AddFlash(c, "Account "+created.Username+" created. You can log in now.")
	response.Redirect(c, "/")
}

// ========================================
// LOGIN / LOGOUT
// ========================================

// LoginPage xử lý GET /auth/login/
func (h *UserHandler) LoginPage(c *gin.Context) {
	response.HTML(c, http.StatusOK, loginTemplate, gin.H{
		"form": user.LoginForm{},
		"next": c.Query("next"),
	})
}

// Login xử lý POST /auth/login/
func (h *UserHandler) Login(c *gin.Context) {
	var form user.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debug().Err(err).Msg("Login form bind failed")
	}
	next := c.PostForm("next")

	u, fieldErrs, err := h.service.Authenticate(c.Request.Context(), form)
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		form.Password = ""
		response.HTML(c, http.StatusBadRequest, loginTemplate, gin.H{
			"form":  form,
			"next":  next,
			"error": invalidLoginMessage,
		})
		return
	case err != nil:
		response.ServerError(c, err)
		return
	case fieldErrs.Any():
		form.Password = ""
		response.HTML(c, http.StatusBadRequest, loginTemplate, gin.H{
			"form":   form,
			"next":   next,
			"errors": fieldErrs,
		})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	middleware.SetAuthCookie(c, h.cookie.Name, token, int(h.jwtManager.TTL().Seconds()), h.cookie.Secure)

	log.Info().Int64("user_id", u.ID).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("User logged in")

	middleware.AddFlash(c, "Logged in as "+u.Username+".")

	target := "/"
	if safe, ok := middleware.SafeNext(next); ok {
		target = safe
	}
	response.Redirect(c, target)
}

// Logout xử lý GET|POST /auth/logout/
func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, h.cookie.Name, h.cookie.Secure)
	response.Redirect(c, "/")
}

// ========================================
// PASSWORD CHANGE (login required)
// ========================================

// PasswordChangePage xử lý GET /auth/password_change/
func (h *UserHandler) PasswordChangePage(c *gin.Context) {
	response.HTML(c, http.StatusOK, passwordChangeTemplate, gin.H{})
}

// PasswordChange xử lý POST /auth/password_change/
func (h *UserHandler) PasswordChange(c *gin.Context) {
	var form user.PasswordChangeForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debug().Err(err).Msg("Password change form bind failed")
	}

	viewer := middleware.GetViewer(c)
	fieldErrs, err := h.service.ChangePassword(c.Request.Context(), viewer.ID, form)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if fieldErrs.Any() {
		response.HTML(c, http.StatusBadRequest, passwordChangeTemplate, gin.H{"errors": fieldErrs})
		return
	}

	response.Redirect(c, PasswordChangeDoneURL)
}

// PasswordChangeDone xử lý GET /auth/password_change/done/
func (h *UserHandler) PasswordChangeDone(c *gin.Context) {
	response.HTML(c, http.StatusOK, passwordChangeDoneTemplate, gin.H{})
}
