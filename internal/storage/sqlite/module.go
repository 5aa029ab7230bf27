package sqlite

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// Open creates SQLite storage and closes it when lc stops.
func Open(ctx context.Context, lc fx.Lifecycle, path string, logger *slog.Logger) (*Storage, error) {
	storage, err := New(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return storage.Close()
		},
	})
	return storage, nil
}
