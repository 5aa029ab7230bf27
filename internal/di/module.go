package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/usersvc/internal/app"
	"github.com/polkiloo/usersvc/internal/config"
	"github.com/polkiloo/usersvc/internal/logger"
	"github.com/polkiloo/usersvc/internal/seed"
	"github.com/polkiloo/usersvc/internal/server/http/handlers"
	"github.com/polkiloo/usersvc/internal/server/http/router"
	"github.com/polkiloo/usersvc/internal/storage"
	"github.com/polkiloo/usersvc/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		storage.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.UsersFacade) handlers.UserFacade { return f },
			func(f *app.UsersFacade) seed.Seeder { return f },
		),
		seed.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
