package model

import (
	"time"

	"yatube/internal/domains/group"
	"yatube/internal/domains/user"
	"yatube/internal/shared/pagination"
)

// Post is the read model of a post row joined with its author and group.
// Group and image columns are NULL-able; missing values come back as "".
type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Author
	AuthorID        int64  `json:"author_id"`
	AuthorUsername  string `json:"author_username"`
	AuthorFirstName string `json:"author_first_name"`
	AuthorLastName  string `json:"author_last_name"`

	// Group (optional)
	GroupID    *int64 `json:"group_id,omitempty"`
	GroupSlug  string `json:"group_slug,omitempty"`
	GroupTitle string `json:"group_title,omitempty"`

	// Image (optional); the thumbnail is rendered later by the worker
	ImageKey     string `json:"-"`
	ImageURL     string `json:"image_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	CommentCount int64 `json:"comment_count"`
}

func (p Post) AuthorName() string {
	return user.DisplayName(p.AuthorUsername, p.AuthorFirstName, p.AuthorLastName)
}

// DisplayImage prefers the cropped thumbnail over the original upload
func (p Post) DisplayImage() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.ImageURL
}

func (p Post) HasImage() bool {
	return p.ImageKey != ""
}

// Comment is a comment row joined with its author's username
type Comment struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"post_id"`
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// Filter narrows a post listing; zero fields are ignored.
// FollowerID selects posts of every author the given user follows (feed).
type Filter struct {
	GroupID    int64
	AuthorID   int64
	FollowerID int64
}

// ========================================
// VIEW MODELS
// ========================================

// GroupPage - /group/{slug}/
type GroupPage struct {
	Group *group.Group
	Posts *pagination.Page[Post]
}

// ProfilePage - /profile/{username}/
type ProfilePage struct {
	Author    *user.User
	PostCount int64
	Following bool
	Posts     *pagination.Page[Post]
}

// DetailPage - /posts/{id}/
type DetailPage struct {
	Post            *Post
	Comments        []Comment
	AuthorPostCount int64
}
