package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version  int
	filename string
}

// Migrate applies every embedded *.up.sql file that has not been recorded in
// schema_migrations yet, one transaction per file.
func Migrate(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	pending, err := pendingMigrations(ctx, database)
	if err != nil {
		return err
	}

	for _, next := range pending {
		content, err := migrationsFS.ReadFile("migrations/" + next.filename)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", next.filename, err)
		}

		err = WithTx(ctx, database, func(transaction *sql.Tx) error {
			if _, err := transaction.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("executing migration %s: %w", next.filename, err)
			}
			if _, err := transaction.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", next.version); err != nil {
				return fmt.Errorf("recording migration %d: %w", next.version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Info("applied migration", "version", next.version, "file", next.filename)
	}

	return nil
}

func pendingMigrations(ctx context.Context, database *sql.DB) ([]migration, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := database.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("listing applied migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scanning migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing applied migrations: %w", err)
	}

	var pending []migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		version := extractVersion(entry.Name())
		if applied[version] {
			continue
		}
		pending = append(pending, migration{version: version, filename: entry.Name()})
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].version < pending[j].version
	})
	return pending, nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
