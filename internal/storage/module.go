package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/usersvc/internal/config"
	"github.com/polkiloo/usersvc/internal/domain/repository"
	"github.com/polkiloo/usersvc/internal/storage/memory"
	"github.com/polkiloo/usersvc/internal/storage/postgres"
	"github.com/polkiloo/usersvc/internal/storage/sqlite"
)

// Module provides the user repository and its health checker selected by configuration.
var Module = fx.Provide(newUserRepository)

type params struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

type result struct {
	fx.Out

	Users  repository.UserRepository
	Health repository.HealthChecker
}

func newUserRepository(p params) (result, error) {
	switch p.Config.Storage {
	case config.StorageMemory:
		p.Logger.Info("using in-memory storage")
		s := memory.New()
		return result{Users: s.Users(), Health: s}, nil
	case config.StoragePostgres:
		p.Logger.Info("using postgres storage")
		s, err := postgres.Open(p.Ctx, p.Lifecycle, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return result{}, err
		}
		return result{Users: s.Users(), Health: s}, nil
	case config.StorageSQLite:
		p.Logger.Info("using sqlite storage", slog.String("path", p.Config.SQLitePath))
		s, err := sqlite.Open(p.Ctx, p.Lifecycle, p.Config.SQLitePath, p.Logger)
		if err != nil {
			return result{}, err
		}
		return result{Users: s.Users(), Health: s}, nil
	default:
		return result{}, fmt.Errorf("unsupported storage %q", p.Config.Storage)
	}
}
