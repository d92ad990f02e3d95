package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/domains/group"
)

type mockGroupService struct {
	mock.Mock
}

func (m *mockGroupService) GetBySlug(ctx context.Context, slug string) (*group.Group, error) {
	args := m.Called(ctx, slug)
	g, _ := args.Get(0).(*group.Group)
	return g, args.Error(1)
}

func (m *mockGroupService) List(ctx context.Context) ([]group.Group, error) {
	args := m.Called(ctx)
	gs, _ := args.Get(0).([]group.Group)
	return gs, args.Error(1)
}

func (m *mockGroupService) Create(ctx context.Context, req group.CreateGroupRequest) (*group.Group, error) {
	args := m.Called(ctx, req)
	g, _ := args.Get(0).(*group.Group)
	return g, args.Error(1)
}

func TestDecodeRequests(t *testing.T) {
	reqs, err := decodeRequests(strings.NewReader(`[
		{"title": "Cats", "description": "meow"},
		{"title": "Dogs", "slug": "dogs"}
	]`))

	require.NoError(t, err)
	assert.Equal(t, []group.CreateGroupRequest{
		{Title: "Cats", Description: "meow"},
		{Title: "Dogs", Slug: "dogs"},
	}, reqs)
}

func TestDecodeRequests_Invalid(t *testing.T) {
	_, err := decodeRequests(strings.NewReader(`{"title": "x"}`))
	assert.Error(t, err)

	_, err = decodeRequests(strings.NewReader(`[]`))
	assert.Error(t, err)
}

func TestLoadRequests_Flags(t *testing.T) {
	reqs, err := loadRequests("", group.CreateGroupRequest{Title: "Cats"})
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	_, err = loadRequests("", group.CreateGroupRequest{})
	assert.Error(t, err)
}

func TestSeed_SkipsDuplicates(t *testing.T) {
	svc := new(mockGroupService)
	ctx := context.Background()
	cats := group.CreateGroupRequest{Title: "Cats"}
	dogs := group.CreateGroupRequest{Title: "Dogs"}

	svc.On("Create", ctx, cats).Return(nil, group.ErrDuplicateSlug)
	svc.On("Create", ctx, dogs).Return(&group.Group{ID: 2, Title: "Dogs", Slug: "dogs"}, nil)

	created, err := seed(ctx, svc, []group.CreateGroupRequest{cats, dogs})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	svc.AssertExpectations(t)
}

func TestSeed_AbortsOnError(t *testing.T) {
	svc := new(mockGroupService)
	ctx := context.Background()
	bad := group.CreateGroupRequest{Title: "!!!"}
	later := group.CreateGroupRequest{Title: "Later"}

	svc.On("Create", ctx, bad).Return(nil, group.ErrInvalidSlug)

	created, err := seed(ctx, svc, []group.CreateGroupRequest{bad, later})

	require.Error(t, err)
	assert.True(t, errors.Is(err, group.ErrInvalidSlug))
	assert.Zero(t, created)
	svc.AssertNotCalled(t, "Create", ctx, later)
}

func TestRun_RequiresInput(t *testing.T) {
	err := run(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either -file or -title is required")
}

func TestRun_RejectsUnknownFlag(t *testing.T) {
	assert.Error(t, run([]string{"-colour", "red"}))
}

func TestRun_BadDatabaseConfigReturnsError(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	err := run([]string{"-title", "Cats"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DB_PORT")
}
