package main

import (
	"context"

	"github.com/snehalbaghel/badgr-server/internal/auth/app"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// withStore opens the migrated database for a one-shot admin command. The
// command's context carries the service logger.
func withStore(ctx context.Context, cfg app.Config, fn func(context.Context, store.Store) error) error {
	cryptox.SetPepperPath(cfg.PepperFile)

	db, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return err
	}

	return fn(slogx.WithContext(ctx, app.NewLogger(cfg)), db)
}
