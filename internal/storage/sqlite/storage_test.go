package sqlite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
)

func setupTestDB(t *testing.T) *userRepository {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage, err := New(context.Background(), ":memory:", logger)
	require.NoError(t, err, "failed to create test store")
	t.Cleanup(func() { _ = storage.Close() })
	return storage.Users().(*userRepository)
}

func logins(users []model.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Login)
	}
	return out
}

func TestNewCreatesDatabaseFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "users.db")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	storage, err := New(context.Background(), dbPath, logger)
	require.NoError(t, err)
	defer storage.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestCreateGetAndDelete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	user := model.User{ID: "id-1", Login: "Neo", Age: 30, Password: "aB1"}

	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, user, *got)

	assert.ErrorIs(t, repo.Create(ctx, user), domainErrors.ErrAlreadyExists)
	assert.ErrorIs(t, repo.Create(ctx, model.User{ID: "id-2", Login: "Neo", Password: "aB1"}), domainErrors.ErrAlreadyExists)

	deleted, err := repo.SoftDelete(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, "Neo", deleted.Login)

	_, err = repo.GetByID(ctx, "id-1")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = repo.SoftDelete(ctx, "id-1")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, repo.Create(ctx, model.User{ID: "id-2", Login: "Neo", Password: "aB1"}), "login of deleted user is free again")
}

func TestUpdate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, model.User{ID: "1", Login: "Neo", Age: 30, Password: "aB1"}))
	require.NoError(t, repo.Create(ctx, model.User{ID: "2", Login: "Trinity", Age: 29, Password: "aB1"}))

	age := 0
	updated, err := repo.Update(ctx, "1", model.UserPatch{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: "1", Login: "Neo", Age: 0, Password: "aB1"}, *updated)

	pwd := "xY9"
	updated, err = repo.Update(ctx, "1", model.UserPatch{Password: &pwd})
	require.NoError(t, err)
	assert.Equal(t, "xY9", updated.Password)
	assert.Equal(t, 0, updated.Age)

	taken := "Trinity"
	_, err = repo.Update(ctx, "1", model.UserPatch{Login: &taken})
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)

	_, err = repo.Update(ctx, "missing", model.UserPatch{Age: &age})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestListByLogin(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	for i, login := range []string{"Varmid", "Olaf", "Hold", "Valder", "ValHen", "abba"} {
		require.NoError(t, repo.Create(ctx, model.User{ID: string(rune('a' + i)), Login: login, Age: 9, Password: "g4G"}))
	}

	all, err := repo.ListByLogin(ctx, "a", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Olaf", "ValHen", "Valder", "Varmid", "abba"}, logins(all))

	limited, err := repo.ListByLogin(ctx, "a", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Olaf", "ValHen"}, logins(limited))

	upper, err := repo.ListByLogin(ctx, "V", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ValHen", "Valder", "Varmid"}, logins(upper))

	none, err := repo.ListByLogin(ctx, "v", -1)
	require.NoError(t, err)
	assert.Empty(t, none)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 6)
}

func TestOpenClosesOnStop(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lc := fxtest.NewLifecycle(t)

	storage, err := Open(context.Background(), lc, ":memory:", logger)
	require.NoError(t, err)

	lc.RequireStart()
	lc.RequireStop()

	assert.Error(t, storage.db.Ping(), "database should be closed after stop")
}

func TestHealthCheck(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage, err := New(context.Background(), ":memory:", logger)
	require.NoError(t, err)

	assert.NoError(t, storage.HealthCheck(context.Background()))
	require.NoError(t, storage.Close())
	assert.Error(t, storage.HealthCheck(context.Background()))
}
