package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/domain/repository"
)

// Storage is a SQLite-backed user store.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

// New opens (creating if needed) the database file at path and initializes schema.
// Path ":memory:" keeps the database in memory.
func New(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() error {
	return s.db.Close()
}

// HealthCheck verifies the database is reachable.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Users returns user repository backed by the storage.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		login TEXT NOT NULL,
		age INTEGER NOT NULL CHECK (age >= 0),
		password TEXT NOT NULL,
		is_deleted INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_active ON users(login) WHERE is_deleted = 0;
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) error {
	const query = `INSERT INTO users (id, login, age, password) VALUES (?, ?, ?, ?)`
	if _, err := r.storage.db.ExecContext(ctx, query, user.ID, user.Login, user.Age, user.Password); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, login, age, password FROM users WHERE id = ? AND is_deleted = 0`
	var u model.User
	if err := r.storage.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Login, &u.Age, &u.Password); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.ListByLogin(ctx, "", -1)
}

func (r *userRepository) ListByLogin(ctx context.Context, fragment string, limit int) ([]model.User, error) {
	// instr is case-sensitive and a negative LIMIT means no limit in SQLite
	const query = `SELECT id, login, age, password FROM users
		WHERE is_deleted = 0 AND instr(login, ?) > 0
		ORDER BY login, id
		LIMIT ?`
	rows, err := r.storage.db.QueryContext(ctx, query, fragment, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Login, &u.Age, &u.Password); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	const query = `UPDATE users
		SET login = COALESCE(?, login), age = COALESCE(?, age), password = COALESCE(?, password)
		WHERE id = ? AND is_deleted = 0
		RETURNING id, login, age, password`
	var u model.User
	err := r.storage.db.QueryRowContext(ctx, query, nullString(patch.Login), nullInt(patch.Age), nullString(patch.Password), id).
		Scan(&u.ID, &u.Login, &u.Age, &u.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) (*model.User, error) {
	const query = `UPDATE users SET is_deleted = 1
		WHERE id = ? AND is_deleted = 0
		RETURNING id, login, age, password`
	u := model.User{IsDeleted: true}
	if err := r.storage.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Login, &u.Age, &u.Password); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return domainErrors.ErrAlreadyExists
	}
	return err
}
