package app

import (
	"context"

	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/usecase"
)

// UsersFacade exposes user operations to the HTTP layer.
type UsersFacade struct {
	users *usecase.UserUseCase
}

func NewUsersFacade(users *usecase.UserUseCase) *UsersFacade {
	return &UsersFacade{users: users}
}

func (f *UsersFacade) User(ctx context.Context, id string) (*model.User, error) {
	return f.users.Get(ctx, id)
}

func (f *UsersFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.users.List(ctx)
}

func (f *UsersFacade) UsersByName(ctx context.Context, login string, limit int) ([]model.User, error) {
	return f.users.ListByLogin(ctx, login, limit)
}

func (f *UsersFacade) CreateUser(ctx context.Context, payload []byte) (*model.User, error) {
	return f.users.Create(ctx, payload)
}

// UpdateUser applies payload and returns the user as it was before the change.
func (f *UsersFacade) UpdateUser(ctx context.Context, id string, payload []byte) (*model.User, error) {
	before, _, err := f.users.Update(ctx, id, payload)
	return before, err
}

func (f *UsersFacade) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	return f.users.Delete(ctx, id)
}

// Seed stores initial users.
func (f *UsersFacade) Seed(ctx context.Context, users []model.User) (int, error) {
	return f.users.Seed(ctx, users)
}
