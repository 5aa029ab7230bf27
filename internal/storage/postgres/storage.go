package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
	"github.com/polkiloo/usersvc/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Users returns user repository backed by the storage.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            login TEXT NOT NULL,
            age INTEGER NOT NULL CHECK (age >= 0),
            password TEXT NOT NULL,
            is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_active ON users(login) WHERE NOT is_deleted`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (r *userRepository) Create(ctx context.Context, user model.User) error {
	const query = `INSERT INTO users (id, login, age, password) VALUES ($1, $2, $3, $4)`
	if _, err := r.storage.pool.Exec(ctx, query, user.ID, user.Login, user.Age, user.Password); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, login, age, password FROM users WHERE id=$1 AND NOT is_deleted`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.Age, &u.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT id, login, age, password FROM users
                   WHERE NOT is_deleted ORDER BY login COLLATE "C", id`
	return r.collect(ctx, query)
}

func (r *userRepository) ListByLogin(ctx context.Context, fragment string, limit int) ([]model.User, error) {
	const query = `SELECT id, login, age, password FROM users
                   WHERE NOT is_deleted AND strpos(login, $1) > 0
                   ORDER BY login COLLATE "C", id
                   LIMIT $2`
	var lim *int
	if limit >= 0 {
		lim = &limit
	}
	return r.collect(ctx, query, fragment, lim)
}

func (r *userRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	const query = `UPDATE users
                   SET login=COALESCE($2, login), age=COALESCE($3, age), password=COALESCE($4, password)
                   WHERE id=$1 AND NOT is_deleted
                   RETURNING id, login, age, password`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id, patch.Login, patch.Age, patch.Password).Scan(&u.ID, &u.Login, &u.Age, &u.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) (*model.User, error) {
	const query = `UPDATE users SET is_deleted=TRUE
                   WHERE id=$1 AND NOT is_deleted
                   RETURNING id, login, age, password`
	u := model.User{IsDeleted: true}
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.Age, &u.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) collect(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
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

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domainErrors.ErrAlreadyExists
	}
	return err
}
