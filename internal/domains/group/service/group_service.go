package service

import (
	"context"
	"strings"

	"yatube/internal/domains/group"
	"yatube/internal/shared/utils"
)

const maxTitleLength = 200

type groupService struct {
	repo group.Repository
}

func NewGroupService(repo group.Repository) group.Service {
	return &groupService{repo: repo}
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*group.Group, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, group.ErrGroupNotFound
	}
	return s.repo.FindBySlug(ctx, slug)
}

func (s *groupService) List(ctx context.Context) ([]group.Group, error) {
	return s.repo.List(ctx)
}

// Create validates the title and derives the slug from it when none is given
func (s *groupService) Create(ctx context.Context, req group.CreateGroupRequest) (*group.Group, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || len([]rune(title)) > maxTitleLength {
		return nil, group.ErrInvalidTitle
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(title)
	}
	if slug == "" || slug != utils.GenerateSlug(slug) {
		return nil, group.ErrInvalidSlug
	}

	g := &group.Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
