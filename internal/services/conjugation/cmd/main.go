package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/config"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/store"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "conjugation",
		Short:         "French verb conjugation tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LocalFromEnv()
			l, err := newLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(l)
			return nil
		},
	}

	root.AddCommand(newServeCmd(), newImportCmd(), newShowCmd(), newTokenCmd())
	return root
}

func newLogger(levelName, format string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "json", "":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// openStore connects to the configured backend. Postgres gets its pending
// migrations applied; SQLite creates its schema on open.
func openStore(ctx context.Context, cfg config.Config) (*store.SQLStore, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := store.NewPostgresDB(store.PostgresConfig{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DB:       cfg.DB.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}

		if err := store.Migrate(db, cfg.Store.Migrations); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		return store.NewPostgresStore(db), nil
	case "sqlite":
		db, err := store.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}

		return store.NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("conjugation exited with error", "error", err)
		os.Exit(1)
	}
}
