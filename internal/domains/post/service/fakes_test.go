package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"yatube/internal/domains/group"
	"yatube/internal/domains/post/model"
	"yatube/internal/domains/user"
)

// memoryStore backs the fake repositories of this package
type memoryStore struct {
	mu       sync.Mutex
	clock    time.Time
	posts    []model.Post
	comments []model.Comment
	users    []user.User
	groups   []group.Group
	follows  map[[2]int64]bool

	failCreate error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		follows: map[[2]int64]bool{},
	}
}

func (m *memoryStore) addUser(username string) *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := user.User{ID: int64(len(m.users) + 1), Username: username}
	m.users = append(m.users, u)
	return &u
}

func (m *memoryStore) addGroup(title, slug string) *group.Group {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := group.Group{ID: int64(len(m.groups) + 1), Title: title, Slug: slug}
	m.groups = append(m.groups, g)
	return &g
}

// postsRepo implements repository.RepositoryInterface
type postsRepo struct{ *memoryStore }

func (r postsRepo) matches(p model.Post, f model.Filter) bool {
	if f.GroupID != 0 && (p.GroupID == nil || *p.GroupID != f.GroupID) {
		return false
	}
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if f.FollowerID != 0 && !r.follows[[2]int64{f.FollowerID, p.AuthorID}] {
		return false
	}
	return true
}

func (r postsRepo) hydrate(p model.Post) model.Post {
	for _, u := range r.users {
		if u.ID == p.AuthorID {
			p.AuthorUsername = u.Username
		}
	}
	p.GroupSlug, p.GroupTitle = "", ""
	if p.GroupID != nil {
		for _, g := range r.groups {
			if g.ID == *p.GroupID {
				p.GroupSlug, p.GroupTitle = g.Slug, g.Title
			}
		}
	}
	p.CommentCount = 0
	for _, c := range r.comments {
		if c.PostID == p.ID {
			p.CommentCount++
		}
	}
	return p
}

func (r postsRepo) List(_ context.Context, f model.Filter, limit, offset int) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Post
	for _, p := range r.posts {
		if r.matches(p, f) {
			out = append(out, r.hydrate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if offset >= len(out) {
		return []model.Post{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r postsRepo) Count(_ context.Context, f model.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.posts {
		if r.matches(p, f) {
			n++
		}
	}
	return n, nil
}

func (r postsRepo) FindByID(_ context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			h := r.hydrate(p)
			return &h, nil
		}
	}
	return nil, model.ErrPostNotFound
}

func (r postsRepo) Create(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.clock = r.clock.Add(time.Minute)
	p.ID = int64(len(r.posts) + 1)
	p.CreatedAt = r.clock
	r.posts = append(r.posts, *p)
	return nil
}

func (r postsRepo) Update(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == p.ID {
			stored := &r.posts[i]
			stored.Text = p.Text
			stored.GroupID = p.GroupID
			stored.ImageKey = p.ImageKey
			stored.ImageURL = p.ImageURL
			stored.ThumbnailURL = p.ThumbnailURL
			return nil
		}
	}
	return model.ErrPostNotFound
}

func (r postsRepo) SetThumbnail(_ context.Context, id int64, imageKey, url string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID == id && r.posts[i].ImageKey == imageKey {
			r.posts[i].ThumbnailURL = url
			return true, nil
		}
	}
	return false, nil
}

func (r postsRepo) ListComments(_ context.Context, postID int64) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r postsRepo) CreateComment(_ context.Context, c *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	c.ID = int64(len(r.comments) + 1)
	c.CreatedAt = r.clock
	r.comments = append(r.comments, *c)
	return nil
}

// groupsRepo implements group.Repository
type groupsRepo struct{ *memoryStore }

func (r groupsRepo) Create(_ context.Context, g *group.Group) error {
	created := r.addGroup(g.Title, g.Slug)
	g.ID = created.ID
	return nil
}

func (r groupsRepo) FindBySlug(_ context.Context, slug string) (*group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.Slug == slug {
			g := g
			return &g, nil
		}
	}
	return nil, group.ErrGroupNotFound
}

func (r groupsRepo) FindByID(_ context.Context, id int64) (*group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.ID == id {
			g := g
			return &g, nil
		}
	}
	return nil, group.ErrGroupNotFound
}

func (r groupsRepo) List(_ context.Context) ([]group.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]group.Group(nil), r.groups...), nil
}

// usersRepo implements user.Repository
type usersRepo struct{ *memoryStore }

func (r usersRepo) Create(_ context.Context, u *user.User) error {
	created := r.addUser(u.Username)
	u.ID = created.ID
	return nil
}

func (r usersRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r usersRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r usersRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return user.ErrUserNotFound
}

// followsRepo implements FollowChecker
type followsRepo struct{ *memoryStore }

func (r followsRepo) IsFollowing(_ context.Context, userID, authorID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.follows[[2]int64{userID, authorID}], nil
}

// objectStore implements ObjectStorage
type objectStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failNext bool
	deleted  []string
}

func newObjectStore() *objectStore {
	return &objectStore{objects: map[string][]byte{}}
}

func (s *objectStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return "", errors.New("connection refused")
	}
	s.objects[key] = data
	return "http://minio.test/yatube/" + key, nil
}

func (s *objectStore) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (s *objectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *objectStore) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
			s.deleted = append(s.deleted, key)
		}
	}
	return nil
}

func (s *objectStore) keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// taskQueue implements queue.Enqueuer
type taskQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (q *taskQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}
