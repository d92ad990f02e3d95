package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"yatube/internal/domains/follow"
	"yatube/internal/domains/user"
	"yatube/internal/shared/middleware"
	"yatube/internal/shared/response"
)

const feedTemplate = "posts/follow.html"

// Metrics is satisfied by *metrics.Metrics
type Metrics interface {
	Followed()
	Unfollowed()
}

type FollowHandler struct {
	service follow.Service
	metrics Metrics
}

func NewFollowHandler(service follow.Service, metrics Metrics) *FollowHandler {
	return &FollowHandler{service: service, metrics: metrics}
}

// Feed - GET /follow/
func (h *FollowHandler) Feed(c *gin.Context) {
	page, err := h.service.Feed(c.Request.Context(), middleware.GetViewer(c).ID, c.Query("page"))
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, feedTemplate, gin.H{"page_obj": page})
}

// Follow - POST /profile/:username/follow/
func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")

	created, err := h.service.Follow(c.Request.Context(), middleware.GetViewer(c).ID, username)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c)
		return
	case errors.Is(err, follow.ErrSelfFollow):
		// silently ignored, same as following twice
	case err != nil:
		response.ServerError(c, err)
		return
	case created:
		h.metrics.Followed()
	}

	response.Redirect(c, profileURL(username))
}

// Unfollow - POST /profile/:username/unfollow/
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")

	removed, err := h.service.Unfollow(c.Request.Context(), middleware.GetViewer(c).ID, username)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c)
		return
	case err != nil:
		response.ServerError(c, err)
		return
	case removed:
		h.metrics.Unfollowed()
	}

	response.Redirect(c, profileURL(username))
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
