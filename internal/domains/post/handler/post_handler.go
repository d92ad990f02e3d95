package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatube/internal/domains/group"
	"yatube/internal/domains/post/model"
	service "yatube/internal/domains/post/service"
	"yatube/internal/domains/user"
	"yatube/internal/shared/forms"
	"yatube/internal/shared/middleware"
	"yatube/internal/shared/response"
)

const (
	indexTemplate   = "posts/index.html"
	groupTemplate   = "posts/group_list.html"
	profileTemplate = "posts/profile.html"
	detailTemplate  = "posts/post_detail.html"
	formTemplate    = "posts/create_post.html"

	// uploads above this are cut off and then rejected as too large
	maxUploadBytes = 5*1024*1024 + 1
)

// Metrics is satisfied by *metrics.Metrics
type Metrics interface {
	PostCreated()
	PostUpdated()
	CommentCreated()
}

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
	metrics Metrics
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface, metrics Metrics) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func DetailURL(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// postID parses :id; anything that is not a positive integer is a 404
func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ========================================
// LISTINGS
// ========================================

// Index - GET /
func (h *Handler) Index(c *gin.Context) {
	page, err := h.service.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, indexTemplate, gin.H{"page_obj": page})
}

// GroupPosts - GET /group/:slug/
func (h *Handler) GroupPosts(c *gin.Context) {
	result, err := h.service.GroupPosts(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if errors.Is(err, group.ErrGroupNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, groupTemplate, gin.H{
		"group":    result.Group,
		"page_obj": result.Posts,
	})
}

// Profile - GET /profile/:username/
func (h *Handler) Profile(c *gin.Context) {
	var viewerID int64
	if v := middleware.GetViewer(c); v != nil {
		viewerID = v.ID
	}

	result, err := h.service.Profile(c.Request.Context(), c.Param("username"), c.Query("page"), viewerID)
	if errors.Is(err, user.ErrUserNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, profileTemplate, gin.H{
		"author":         result.Author,
		"page_obj":       result.Posts,
		"cnt_posts_user": result.PostCount,
		"following":      result.Following,
	})
}

// Detail - GET /posts/:id/
func (h *Handler) Detail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		response.NotFound(c)
		return
	}
	h.renderDetail(c, id, http.StatusOK, model.CommentForm{}, nil)
}

func (h *Handler) renderDetail(c *gin.Context, id int64, status int, form model.CommentForm, fe forms.FieldErrors) {
	detail, err := h.service.Detail(c.Request.Context(), id)
	if errors.Is(err, model.ErrPostNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, status, detailTemplate, gin.H{
		"post":           detail.Post,
		"comments":       detail.Comments,
		"cnt_posts_user": detail.AuthorPostCount,
		"form":           form,
		"errors":         fe,
	})
}

// ========================================
// CREATE / EDIT
// ========================================

// bindPostForm reads text, group and the optional image file
func bindPostForm(c *gin.Context) (model.PostForm, error) {
	var form model.PostForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debug().Err(err).Msg("Post form bind failed")
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil
	}
	if err != nil {
		return form, fmt.Errorf("read image part: %w", err)
	}

	data, err := readUpload(fh)
	if err != nil {
		return form, err
	}
	form.Image = &model.Upload{Filename: fh.Filename, Data: data}
	return form, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func (h *Handler) renderForm(c *gin.Context, status int, data gin.H) {
	groups, err := h.service.Groups(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}
	data["groups"] = groups
	response.HTML(c, status, formTemplate, data)
}

// CreatePage - GET /create/
func (h *Handler) CreatePage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, gin.H{"form": model.PostForm{}, "is_edit": false})
}

// Create - POST /create/
func (h *Handler) Create(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	form, err := bindPostForm(c)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	_, fe, err := h.service.Create(c.Request.Context(), viewer.ID, form)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if fe.Any() {
		h.renderForm(c, http.StatusBadRequest, gin.H{"form": form, "errors": fe, "is_edit": false})
		return
	}

	h.metrics.PostCreated()
	middleware.AddFlash(c, "Post published.")
	response.Redirect(c, ProfileURL(viewer.Username))
}

// EditPage - GET /posts/:id/edit/
func (h *Handler) EditPage(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		response.NotFound(c)
		return
	}

	p, err := h.service.EditForm(c.Request.Context(), id, middleware.GetViewer(c).ID)
	if h.handleEditError(c, id, err) {
		return
	}
	h.renderForm(c, http.StatusOK, gin.H{
		"form":    model.FormFromPost(p),
		"is_edit": true,
		"post_id": id,
	})
}

// Edit - POST /posts/:id/edit/
func (h *Handler) Edit(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		response.NotFound(c)
		return
	}

	form, err := bindPostForm(c)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	_, fe, err := h.service.Update(c.Request.Context(), id, middleware.GetViewer(c).ID, form)
	if h.handleEditError(c, id, err) {
		return
	}
	if fe.Any() {
		h.renderForm(c, http.StatusBadRequest, gin.H{
			"form":    form,
			"errors":  fe,
			"is_edit": true,
			"post_id": id,
		})
		return
	}

	h.metrics.PostUpdated()
	response.Redirect(c, DetailURL(id))
}

// handleEditError writes the response for err and reports whether it did.
// Only the author may edit; everyone else is sent back to the post.
func (h *Handler) handleEditError(c *gin.Context, id int64, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, model.ErrNotAuthor):
		response.Redirect(c, DetailURL(id))
	case errors.Is(err, model.ErrPostNotFound):
		response.NotFound(c)
	default:
		response.ServerError(c, err)
	}
	return true
}

// ========================================
// COMMENTS
// ========================================

// AddComment - POST /posts/:id/comment/
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var form model.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debug().Err(err).Msg("Comment form bind failed")
	}

	_, fe, err := h.service.AddComment(c.Request.Context(), id, middleware.GetViewer(c).ID, form)
	if errors.Is(err, model.ErrPostNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if fe.Any() {
		h.renderDetail(c, id, http.StatusBadRequest, form, fe)
		return
	}

	h.metrics.CommentCreated()
	response.Redirect(c, DetailURL(id))
}
