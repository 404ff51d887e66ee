// devdb recreates the development database and seeds the demo user.
// It drops every table first; never point it at a real database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/pflag"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/platform/db"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
)

const (
	demoUsername = "demo1"
	demoPwd      = "welcome"
)

func main() {
	dsn := pflag.String("dsn", os.Getenv("PG_DSN"), "postgres connection string (defaults to $PG_DSN)")
	keep := pflag.Bool("keep", false, "apply the schema without dropping existing tables")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(context.Background(), *dsn, *keep, logger); err != nil {
		logger.Error("devdb", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn string, keep bool, logger *slog.Logger) error {
	if dsn == "" {
		return errors.New("no dsn: pass --dsn or set PG_DSN")
	}
	pool, err := db.New(ctx, dsn, db.Options{MaxConns: 1})
	if err != nil {
		return err
	}
	defer pool.Close()

	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		apply := db.ResetSchema
		if keep {
			apply = db.ApplySchema
		}
		if err := apply(ctx, tx); err != nil {
			return err
		}
		id, err := seed(ctx, model.New(tx))
		if err != nil {
			return err
		}
		logger.Info("dev database ready", slog.String("username", demoUsername), slog.Int64("user_id", id))
		return nil
	})
}

// seed creates the demo user, or resets its password when it already exists.
func seed(ctx context.Context, mm *model.ModelManager) (int64, error) {
	root := shared.RootCtx()
	id, err := mm.Users().Create(ctx, root, model.UserForCreate{Username: demoUsername, PwdClear: demoPwd})
	if errors.Is(err, model.ErrUsernameTaken) {
		user, err := mm.Users().FirstByUsername(ctx, root, demoUsername)
		if err != nil {
			return 0, err
		}
		return user.ID, mm.Users().UpdatePwd(ctx, root, user.ID, demoPwd)
	}
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", demoUsername, err)
	}
	return id, nil
}
