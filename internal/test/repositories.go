package test

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests and records calls.
type UserRepositoryStub struct {
	CreateFn      func(context.Context, model.User) error
	GetByIDFn     func(context.Context, string) (*model.User, error)
	ListFn        func(context.Context) ([]model.User, error)
	ListByLoginFn func(context.Context, string, int) ([]model.User, error)
	UpdateFn      func(context.Context, string, model.UserPatch) (*model.User, error)
	SoftDeleteFn  func(context.Context, string) (*model.User, error)

	Users   map[string]*model.User
	Created []model.User
	Err     error
	mu      sync.Mutex
}

// NewUserRepositoryStub constructs stub repository with initialized map.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

// Create stores user unless id already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Created = append(s.Created, user)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user)
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[user.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := user
	s.Users[user.ID] = &stored
	return nil
}

// GetByID returns visible user or not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[id]; ok && !user.IsDeleted {
		found := *user
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns visible users sorted by login.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.ListByLogin(ctx, "", -1)
}

// ListByLogin filters visible users by login fragment.
func (s *UserRepositoryStub) ListByLogin(ctx context.Context, fragment string, limit int) ([]model.User, error) {
	if s.ListByLoginFn != nil {
		return s.ListByLoginFn(ctx, fragment, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.User
	for _, user := range s.Users {
		if !user.IsDeleted && strings.Contains(user.Login, fragment) {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Login < result[j].Login })
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Update merges patch into visible user.
func (s *UserRepositoryStub) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.Users[id]
	if !ok || user.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	patch.Apply(user)
	updated := *user
	return &updated, nil
}

// SoftDelete flags visible user as deleted.
func (s *UserRepositoryStub) SoftDelete(ctx context.Context, id string) (*model.User, error) {
	if s.SoftDeleteFn != nil {
		return s.SoftDeleteFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.Users[id]
	if !ok || user.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	user.IsDeleted = true
	deleted := *user
	return &deleted, nil
}

// HealthCheckerStub returns Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck reports the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
