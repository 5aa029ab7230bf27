package handlers

import (
	"context"

	"github.com/polkiloo/usersvc/internal/domain/model"
)

// UserFacade describes user operations exposed via HTTP.
type UserFacade interface {
	User(ctx context.Context, id string) (*model.User, error)
	Users(ctx context.Context) ([]model.User, error)
	UsersByName(ctx context.Context, login string, limit int) ([]model.User, error)
	CreateUser(ctx context.Context, payload []byte) (*model.User, error)
	// UpdateUser returns the user as it was before the change.
	UpdateUser(ctx context.Context, id string, payload []byte) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
}
