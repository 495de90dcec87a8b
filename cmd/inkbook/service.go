package main

import (
	"context"
	"fmt"

	"github.com/glabrego/inkbook/internal/app"
	"github.com/glabrego/inkbook/internal/storage"
)

// openService opens the cache database and wires it to the catalog file.
// The returned close function releases the database.
func openService(ctx context.Context, env *appEnv) (*app.Service, func(), error) {
	repo, err := storage.NewRepository(env.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("storage init error: %w", err)
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			env.logger.Sugar().Warnw("close storage", "error", err)
		}
	}

	if err := repo.Init(ctx); err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("storage write check failed (%v). Verify INKBOOK_DB_PATH is writable: %s", err, env.cfg.DBPath)
	}

	return app.NewService(app.FileLoader{Path: env.cfg.CatalogPath}, repo), closeRepo, nil
}
