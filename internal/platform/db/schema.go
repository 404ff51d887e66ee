package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Execer is the subset of pgx used to run schema files.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SchemaFiles lists the embedded schema files in the order they are applied.
func SchemaFiles() ([]string, error) {
	names, err := fs.Glob(schemaFS, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("platform/db: list schema: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// ApplySchema creates the tables when they do not exist yet.
func ApplySchema(ctx context.Context, db Execer) error {
	names, err := SchemaFiles()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := execFile(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// ResetSchema drops every table and applies the schema again. Dev and tests only.
func ResetSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS task; DROP TABLE IF EXISTS users;"); err != nil {
		return fmt.Errorf("platform/db: drop tables: %w", err)
	}
	return ApplySchema(ctx, db)
}

func execFile(ctx context.Context, db Execer, name string) error {
	content, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("platform/db: read %s: %w", name, err)
	}
	// No args, so pgx uses the simple protocol and accepts several statements.
	if _, err := db.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("platform/db: apply %s: %w", name, err)
	}
	return nil
}
