// ABOUTME: Database connection setup for SQLite, Postgres, and MySQL via bun
// ABOUTME: Creates the schema and ownership indexes on startup

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Open connects to the database selected by driver ("sqlite", "postgres",
// or "mysql") and returns a bun handle with the matching dialect. For
// SQLite, parent directories of the database file are created and WAL mode
// plus foreign key enforcement are enabled.
func Open(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "sqlite", "":
		return openSQLite(dsn)
	case "postgres":
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "mysql":
		sqldb, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening mysql database: %w", err)
		}
		return bun.NewDB(sqldb, mysqldialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openSQLite(dsn string) (*bun.DB, error) {
	// Bare file paths get their parent directory created; URI-style DSNs
	// are passed through untouched.
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := sqldb.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := sqldb.Exec("PRAGMA foreign_keys=ON"); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// InitSchema registers all entity models and creates their tables and
// indexes if they do not exist. Users come first so the ownership foreign
// keys on projects and knowledge bases resolve.
func InitSchema(ctx context.Context, db *bun.DB) error {
	RegisterModels(db)

	models := []any{
		(*User)(nil),
		(*Project)(nil),
		(*KnowledgeBase)(nil),
	}
	for _, m := range models {
		_, err := db.NewCreateTable().Model(m).IfNotExists().WithForeignKeys().Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating table for %T: %w", m, err)
		}
	}

	indexes := []struct {
		model  any
		name   string
		column string
	}{
		{(*Project)(nil), "idx_projects_owner", "owner_id"},
		{(*KnowledgeBase)(nil), "idx_knowledge_bases_owner", "owner_id"},
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.column).IfNotExists().Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	slog.Default().With("component", "store").Info("schema initialized")
	return nil
}
