package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/domain/repository"
)

// Storage keeps users in a process-local map. Soft-deleted records stay in the
// map with IsDeleted set. All access goes through mu.
type Storage struct {
	mu    sync.RWMutex
	users map[string]model.User
}

type userRepository struct {
	storage *Storage
}

// New creates empty in-memory storage.
func New() *Storage {
	return &Storage{users: make(map[string]model.User)}
}

// Users returns user repository backed by the storage.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

// HealthCheck always succeeds: the map lives in process memory.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if s.loginTakenLocked(user.Login, "") {
		return domainErrors.ErrAlreadyExists
	}
	user.IsDeleted = false
	s.users[user.ID] = user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok || user.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.ListByLogin(ctx, "", -1)
}

func (r *userRepository) ListByLogin(ctx context.Context, fragment string, limit int) ([]model.User, error) {
	s := r.storage
	s.mu.RLock()
	result := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		if user.IsDeleted || !strings.Contains(user.Login, fragment) {
			continue
		}
		result = append(result, user)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Login != result[j].Login {
			return result[i].Login < result[j].Login
		}
		return result[i].ID < result[j].ID
	})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || user.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	if patch.Login != nil && s.loginTakenLocked(*patch.Login, id) {
		return nil, domainErrors.ErrAlreadyExists
	}
	patch.Apply(&user)
	s.users[id] = user
	return &user, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || user.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	user.IsDeleted = true
	s.users[id] = user
	return &user, nil
}

// loginTakenLocked reports whether a visible user other than exceptID owns login.
func (s *Storage) loginTakenLocked(login, exceptID string) bool {
	for id, user := range s.users {
		if id != exceptID && !user.IsDeleted && user.Login == login {
			return true
		}
	}
	return false
}
