package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "yatube/pkg/database"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies every embedded migration in file-name order.
// Each statement is idempotent (IF NOT EXISTS) so the whole set runs on every start.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	return pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		for _, name := range files {
			script, err := migrationFS.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			if _, err := tx.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
			log.Info().Str("migration", name).Msg("[DATABASE] Migration applied")
		}
		return nil
	})
}
