package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/domain/repository"
)

// IDGenerator produces identifiers for new users.
type IDGenerator func() string

// UserUseCase encapsulates user lifecycle logic.
type UserUseCase struct {
	users  repository.UserRepository
	newID  IDGenerator
	logger *slog.Logger
}

// NewUserUseCase constructs UserUseCase with UUID identifiers.
func NewUserUseCase(users repository.UserRepository, logger *slog.Logger) *UserUseCase {
	return NewUserUseCaseWithIDs(users, uuid.NewString, logger)
}

// NewUserUseCaseWithIDs constructs UserUseCase with a custom id source.
func NewUserUseCaseWithIDs(users repository.UserRepository, ids IDGenerator, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{users: users, newID: ids, logger: logger}
}

// Get returns a visible user.
func (u *UserUseCase) Get(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// List returns all visible users.
func (u *UserUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// ListByLogin returns visible users whose login contains fragment, sorted by login.
// A negative limit disables truncation.
func (u *UserUseCase) ListByLogin(ctx context.Context, fragment string, limit int) ([]model.User, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, domainErrors.ErrEmptyLogin
	}
	return u.users.ListByLogin(ctx, fragment, limit)
}

// Create validates payload and stores a new user under a fresh id.
func (u *UserUseCase) Create(ctx context.Context, payload []byte) (*model.User, error) {
	user, err := ValidateUser(payload)
	if err != nil {
		return nil, err
	}
	user.ID = u.newID()
	if err := u.users.Create(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update validates a partial payload and merges it into the stored user.
// It returns the user as it was before and after the change.
func (u *UserUseCase) Update(ctx context.Context, id string, payload []byte) (before, after *model.User, err error) {
	patch, err := ValidateUserPatch(payload)
	if err != nil {
		return nil, nil, err
	}
	before, err = u.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if patch.Empty() {
		return before, before, nil
	}
	after, err = u.users.Update(ctx, id, patch)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// Delete soft-deletes a user and returns the record as it was before deletion.
func (u *UserUseCase) Delete(ctx context.Context, id string) (*model.User, error) {
	return u.users.SoftDelete(ctx, id)
}

// Seed stores initial users, skipping entries that already exist.
// Entries without id get a generated one. Returns number of inserted users.
func (u *UserUseCase) Seed(ctx context.Context, users []model.User) (int, error) {
	inserted := 0
	for _, user := range users {
		if user.ID == "" {
			user.ID = u.newID()
		}
		user.IsDeleted = false
		if err := u.users.Create(ctx, user); err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				u.logger.Warn("seed user skipped", slog.String("id", user.ID), slog.String("login", user.Login))
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
