package test

import (
	"context"

	"github.com/polkiloo/usersvc/internal/domain/model"
)

// UserFacadeStub provides controllable behaviour for user endpoints.
type UserFacadeStub struct {
	UserFn        func(context.Context, string) (*model.User, error)
	UsersFn       func(context.Context) ([]model.User, error)
	UsersByNameFn func(context.Context, string, int) ([]model.User, error)
	CreateFn      func(context.Context, []byte) (*model.User, error)
	UpdateFn      func(context.Context, string, []byte) (*model.User, error)
	DeleteFn      func(context.Context, string) (*model.User, error)
}

// User delegates to provided function or returns a default user.
func (s UserFacadeStub) User(ctx context.Context, id string) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return &model.User{ID: id, Login: "Neo", Age: 30, Password: "aB1"}, nil
}

// Users returns predefined users.
func (s UserFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{ID: "1", Login: "Neo", Age: 30, Password: "aB1"}}, nil
}

// UsersByName returns predefined search results.
func (s UserFacadeStub) UsersByName(ctx context.Context, login string, limit int) ([]model.User, error) {
	if s.UsersByNameFn != nil {
		return s.UsersByNameFn(ctx, login, limit)
	}
	return []model.User{{ID: "1", Login: login, Age: 30, Password: "aB1"}}, nil
}

// CreateUser returns a created user with a fixed id.
func (s UserFacadeStub) CreateUser(ctx context.Context, payload []byte) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, payload)
	}
	return &model.User{ID: "generated", Login: "Neo", Age: 30, Password: "aB1"}, nil
}

// UpdateUser returns the user as it was before the update.
func (s UserFacadeStub) UpdateUser(ctx context.Context, id string, payload []byte) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, payload)
	}
	return &model.User{ID: id, Login: "Neo", Age: 30, Password: "aB1"}, nil
}

// DeleteUser returns the removed user.
func (s UserFacadeStub) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return &model.User{ID: id, Login: "Neo", Age: 30, Password: "aB1", IsDeleted: true}, nil
}
