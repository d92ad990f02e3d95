package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"yatube/internal/domains/follow"
	"yatube/internal/domains/post/model"
	postRepository "yatube/internal/domains/post/repository"
	"yatube/internal/domains/user"
	"yatube/internal/shared/pagination"
)

type followService struct {
	repo    follow.Repository
	users   user.Repository
	posts   postRepository.RepositoryInterface
	perPage int
}

func NewFollowService(repo follow.Repository, users user.Repository, posts postRepository.RepositoryInterface, perPage int) follow.Service {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &followService{repo: repo, users: users, posts: posts, perPage: perPage}
}

func (s *followService) Follow(ctx context.Context, userID int64, username string) (bool, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if author.ID == userID {
		return false, follow.ErrSelfFollow
	}

	created, err := s.repo.Follow(ctx, userID, author.ID)
	if err != nil {
		return false, err
	}
	if created {
		log.Info().Int64("user_id", userID).Int64("author_id", author.ID).Msg("Followed author")
	}
	return created, nil
}

func (s *followService) Unfollow(ctx context.Context, userID int64, username string) (bool, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	removed, err := s.repo.Unfollow(ctx, userID, author.ID)
	if err != nil {
		return false, err
	}
	if removed {
		log.Info().Int64("user_id", userID).Int64("author_id", author.ID).Msg("Unfollowed author")
	}
	return removed, nil
}

func (s *followService) Feed(ctx context.Context, userID int64, rawPage string) (*pagination.Page[model.Post], error) {
	return postRepository.Paginate(ctx, s.posts, model.Filter{FollowerID: userID}, rawPage, s.perPage)
}
