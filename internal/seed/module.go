package seed

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/usersvc/internal/config"
	"github.com/polkiloo/usersvc/internal/domain/model"
)

// Module seeds the user store on start when a seed file is configured.
var Module = fx.Invoke(registerLifecycle)

// Seeder stores initial users.
type Seeder interface {
	Seed(ctx context.Context, users []model.User) (int, error)
}

type params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Seeder    Seeder
	Logger    *slog.Logger
}

func registerLifecycle(p params) {
	if p.Config.SeedFile == "" {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			users, err := Load(p.Config.SeedFile)
			if err != nil {
				return err
			}
			inserted, err := p.Seeder.Seed(ctx, users)
			if err != nil {
				return err
			}
			p.Logger.Info("users seeded",
				slog.String("file", p.Config.SeedFile),
				slog.Int("inserted", inserted),
				slog.Int("total", len(users)),
			)
			return nil
		},
	})
}
