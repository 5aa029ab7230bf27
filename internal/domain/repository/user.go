package repository

import (
	"context"

	"github.com/polkiloo/usersvc/internal/domain/model"
)

// UserRepository describes persistence operations for users.
// Every read skips soft-deleted records.
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// ListByLogin returns users whose login contains fragment, sorted by login.
	// A negative limit means no limit.
	ListByLogin(ctx context.Context, fragment string, limit int) ([]model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	SoftDelete(ctx context.Context, id string) (*model.User, error)
}

// HealthChecker reports whether the backing store can serve requests.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
