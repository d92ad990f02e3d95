package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"yatube/internal/domains/group"
	"yatube/internal/domains/post/model"
	"yatube/internal/domains/post/repository"
	"yatube/internal/domains/user"
	"yatube/internal/infrastructure/queue"
	"yatube/internal/infrastructure/storage"
	"yatube/internal/shared/forms"
	"yatube/internal/shared/pagination"
)

const (
	imagePrefix     = "posts/"
	thumbnailPrefix = "posts/thumbs/"
)

// Deps groups the collaborators of the post service.
// Storage and Queue may be nil: uploads are then refused and thumbnails skipped.
type Deps struct {
	Posts   repository.RepositoryInterface
	Groups  group.Repository
	Users   user.Repository
	Follows FollowChecker
	Storage ObjectStorage
	Images  *storage.ImageProcessor
	Queue   queue.Enqueuer
	PerPage int
}

type postService struct {
	posts   repository.RepositoryInterface
	groups  group.Repository
	users   user.Repository
	follows FollowChecker
	storage ObjectStorage
	images  *storage.ImageProcessor
	queue   queue.Enqueuer
	perPage int
}

func NewPostService(d Deps) ServiceInterface {
	if d.Images == nil {
		d.Images = storage.NewImageProcessor()
	}
	if d.PerPage <= 0 {
		d.PerPage = pagination.DefaultPerPage
	}
	return &postService{
		posts:   d.Posts,
		groups:  d.Groups,
		users:   d.Users,
		follows: d.Follows,
		storage: d.Storage,
		images:  d.Images,
		queue:   d.Queue,
		perPage: d.PerPage,
	}
}

// ========================================
// LISTINGS
// ========================================

func (s *postService) list(ctx context.Context, filter model.Filter, rawPage string) (*pagination.Page[model.Post], error) {
	return repository.Paginate(ctx, s.posts, filter, rawPage, s.perPage)
}

func (s *postService) Index(ctx context.Context, page string) (*pagination.Page[model.Post], error) {
	return s.list(ctx, model.Filter{}, page)
}

func (s *postService) GroupPosts(ctx context.Context, slug, page string) (*model.GroupPage, error) {
	g, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.list(ctx, model.Filter{GroupID: g.ID}, page)
	if err != nil {
		return nil, err
	}
	return &model.GroupPage{Group: g, Posts: posts}, nil
}

func (s *postService) Profile(ctx context.Context, username, page string, viewerID int64) (*model.ProfilePage, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.list(ctx, model.Filter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID && s.follows != nil {
		following, err = s.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &model.ProfilePage{
		Author:    author,
		PostCount: posts.TotalItems,
		Following: following,
		Posts:     posts,
	}, nil
}

func (s *postService) Detail(ctx context.Context, id int64) (*model.DetailPage, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.posts.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.posts.Count(ctx, model.Filter{AuthorID: p.AuthorID})
	if err != nil {
		return nil, err
	}

	return &model.DetailPage{Post: p, Comments: comments, AuthorPostCount: count}, nil
}

func (s *postService) Groups(ctx context.Context) ([]group.Group, error) {
	return s.groups.List(ctx)
}

// ========================================
// WRITES
// ========================================

func (s *postService) clean(ctx context.Context, form model.PostForm) (*model.PostFields, forms.FieldErrors, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	fields, fe, err := model.CleanPostForm(form, groups, s.images)
	if err != nil || fe.Any() {
		return nil, fe, err
	}
	if fields.Image != nil && s.storage == nil {
		fe.Add("image", model.MsgUploadsUnavailable)
		return nil, fe, nil
	}
	return fields, fe, nil
}

// upload stores a validated image under posts/<uuid>.<ext>
func (s *postService) upload(ctx context.Context, img *model.ValidImage) (key, url string, err error) {
	key = imagePrefix + uuid.NewString() + "." + img.Info.Ext
	url, err = s.storage.Upload(ctx, key, img.Data, img.Info.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	return key, url, nil
}

// discard removes an object that no row points to; failures are only logged
func (s *postService) discard(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to remove orphaned image")
	}
}

func (s *postService) scheduleThumbnail(ctx context.Context, postID int64) {
	if s.queue == nil {
		return
	}
	if err := queue.EnqueueProcessPostImage(ctx, s.queue, postID); err != nil {
		log.Warn().Err(err).Int64("post_id", postID).Msg("Failed to enqueue thumbnail job")
	}
}

func (s *postService) Create(ctx context.Context, authorID int64, form model.PostForm) (*model.Post, forms.FieldErrors, error) {
	fields, fe, err := s.clean(ctx, form)
	if err != nil || fe.Any() {
		return nil, fe, err
	}

	p := &model.Post{
		Text:     fields.Text,
		AuthorID: authorID,
		GroupID:  fields.GroupID,
	}

	if fields.Image != nil {
		p.ImageKey, p.ImageURL, err = s.upload(ctx, fields.Image)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.posts.Create(ctx, p); err != nil {
		s.discard(ctx, p.ImageKey)
		return nil, nil, err
	}

	log.Info().Int64("post_id", p.ID).Int64("author_id", authorID).Bool("image", p.HasImage()).Msg("Post created")

	if p.HasImage() {
		s.scheduleThumbnail(ctx, p.ID)
	}
	return p, fe, nil
}

func (s *postService) EditForm(ctx context.Context, id, viewerID int64) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != viewerID {
		return p, model.ErrNotAuthor
	}
	return p, nil
}

// Update applies the form to the author's post. A new image replaces the old one
// and its thumbnails; no image keeps the current one.
func (s *postService) Update(ctx context.Context, id, viewerID int64, form model.PostForm) (*model.Post, forms.FieldErrors, error) {
	p, err := s.EditForm(ctx, id, viewerID)
	if err != nil {
		return p, nil, err
	}

	fields, fe, err := s.clean(ctx, form)
	if err != nil || fe.Any() {
		return p, fe, err
	}

	oldKey := p.ImageKey
	p.Text = fields.Text
	p.GroupID = fields.GroupID

	if fields.Image != nil {
		p.ImageKey, p.ImageURL, err = s.upload(ctx, fields.Image)
		if err != nil {
			return p, nil, err
		}
		p.ThumbnailURL = ""
	}

	if err := s.posts.Update(ctx, p); err != nil {
		if p.ImageKey != oldKey {
			s.discard(ctx, p.ImageKey)
		}
		return p, nil, err
	}

	log.Info().Int64("post_id", p.ID).Msg("Post updated")

	if p.ImageKey != oldKey {
		s.discard(ctx, oldKey)
		if err := s.storage.DeleteByPrefix(context.WithoutCancel(ctx), thumbnailKeyPrefix(p.ID)); err != nil {
			log.Warn().Err(err).Int64("post_id", p.ID).Msg("Failed to remove old thumbnails")
		}
		s.scheduleThumbnail(ctx, p.ID)
	}
	return p, fe, nil
}

func (s *postService) AddComment(ctx context.Context, postID, authorID int64, form model.CommentForm) (*model.Comment, forms.FieldErrors, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, nil, err
	}

	text, fe, err := model.CleanCommentForm(form)
	if err != nil || fe.Any() {
		return nil, fe, err
	}

	c := &model.Comment{PostID: postID, AuthorID: authorID, Text: text}
	if err := s.posts.CreateComment(ctx, c); err != nil {
		return nil, nil, err
	}
	return c, fe, nil
}

// ========================================
// BACKGROUND
// ========================================

func thumbnailKeyPrefix(postID int64) string {
	return thumbnailPrefix + strconv.FormatInt(postID, 10) + "-"
}

func (s *postService) ProcessImage(ctx context.Context, postID int64) error {
	if s.storage == nil {
		return model.ErrStorageUnavailable
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if !p.HasImage() {
		return nil
	}

	original, err := s.storage.Download(ctx, p.ImageKey)
	if err != nil {
		return fmt.Errorf("download %s: %w", p.ImageKey, err)
	}

	thumb, err := s.images.Thumbnail(original)
	if err != nil {
		return fmt.Errorf("render thumbnail: %w", err)
	}

	key := thumbnailKeyPrefix(postID) + uuid.NewString() + ".jpg"
	url, err := s.storage.Upload(ctx, key, thumb, "image/jpeg")
	if err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	stored, err := s.posts.SetThumbnail(ctx, postID, p.ImageKey, url)
	if err != nil {
		s.discard(ctx, key)
		return err
	}
	if !stored {
		// image replaced while the job was running; the newer job owns the thumbnail
		s.discard(ctx, key)
	}
	return nil
}
