package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/config"
	"github.com/bensuskins/habit-hub/internal/database"
	"github.com/bensuskins/habit-hub/internal/logging"
)

type app struct {
	config   config.Config
	database *sql.DB
	clock    clock.Clock
}

// bootstrap loads configuration, installs the logger and opens a migrated database.
func bootstrap(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if _, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}); err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	cleanup := func() {
		_ = db.Close()
	}
	return &app{config: cfg, database: db, clock: clock.System{Location: location}}, cleanup, nil
}
