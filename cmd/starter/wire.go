// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/config"
	"github.com/naranyala/webui-starter/internal/database"
	"github.com/naranyala/webui-starter/internal/handlers"
	"github.com/naranyala/webui-starter/internal/logging"
)

// App holds the wired subsystems and manages their lifecycle.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *database.Database
	Handlers *handlers.Handlers

	logCloser io.Closer
}

// openLogger builds the process logger. Tests replace it to observe the
// closer.
var openLogger = logging.New

// WireApp opens the logger and the store and builds the handlers. The
// schema is created if missing. The logger also becomes the slog default.
func WireApp(cfg *config.Config) (*App, error) {
	logger, closer, err := openLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	db, err := database.Open(cfg.Database.Path, database.WithLogger(logger))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	if err := db.Init(); err != nil {
		_ = db.Close()
		_ = closer.Close()
		return nil, err
	}
	database.WarnInsecurePermissions(cfg.Database.Path)

	logger.Info("application wired", "app", cfg.App.Name, "version", cfg.App.Version, "database", db.Path())

	return &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Handlers:  handlers.New(db, logger),
		logCloser: closer,
	}, nil
}

// SeedIfEmpty inserts the sample users when seeding is enabled and the store
// holds no rows. It reports whether it seeded.
func (a *App) SeedIfEmpty() (bool, error) {
	if !a.Config.Database.CreateSampleData || a.DB.GetStats().TotalUsers > 0 {
		return false, nil
	}
	if err := a.DB.InsertSampleData(); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	return errors.Join(a.DB.Close(), a.logCloser.Close())
}

// openApp loads configuration and wires the application.
func (c *cli) openApp(cmd *cobra.Command) (*App, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(cfg.Database.Path); err != nil {
		return nil, err
	}
	return WireApp(cfg)
}
