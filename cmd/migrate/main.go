package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hicham1970/inspec/internal/config"
	"github.com/Hicham1970/inspec/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Applies migrations/ to DATABASE_URL. For a Supabase project, paste
000_consolidated.sql into the SQL editor instead.

Commands:
  (default)   apply pending migrations
  status      list migrations and whether they are applied
  reset       drop every table, then apply the consolidated schema
  fresh       drop every table, then apply every migration in order`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log.Level)

	if cfg.DatabaseURL == "" {
		logging.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	dir := findMigrationDir()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		runIncremental(ctx, pool, dir)
	case "status":
		printStatus(ctx, pool, dir)
	case "reset":
		runScript(ctx, pool, dir, "000_drop_all.sql")
		runConsolidated(ctx, pool, dir)
	case "fresh":
		runScript(ctx, pool, dir, "000_drop_all.sql")
		runIncremental(ctx, pool, dir)
	default:
		usage()
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// upFiles returns the *.up.sql names in dir, sorted.
func upFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "dir", dir, "error", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logging.Fatal("create schema_migrations failed", "error", err)
	}
}

func applied(ctx context.Context, pool *pgxpool.Pool, name string) bool {
	var exists bool
	err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	if err != nil {
		logging.Fatal("query schema_migrations failed", "error", err)
	}
	return exists
}

func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	count := 0
	for _, filename := range upFiles(dir) {
		name := strings.TrimSuffix(filename, ".up.sql")
		if applied(ctx, pool, name) {
			continue
		}

		sql, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			logging.Fatal("read migration failed", "migration", name, "error", err)
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			logging.Fatal("begin failed", "migration", name, "error", err)
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			_ = tx.Rollback(ctx)
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		if err := tx.Commit(ctx); err != nil {
			logging.Fatal("commit failed", "migration", name, "error", err)
		}
		count++
		slog.Info("migration applied", "migration", name)
	}

	if count == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", count)
	}
}

func printStatus(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)
	for _, filename := range upFiles(dir) {
		name := strings.TrimSuffix(filename, ".up.sql")
		state := "pending"
		if applied(ctx, pool, name) {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
}

func runScript(ctx context.Context, pool *pgxpool.Pool, dir, name string) {
	sql, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		logging.Fatal("read script failed", "script", name, "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("script failed", "script", name, "error", err)
	}
	slog.Info("script applied", "script", name)
}

// runConsolidated applies 000_consolidated.sql and marks every migration applied.
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) {
	runScript(ctx, pool, dir, "000_consolidated.sql")

	ensureSchemaMigrations(ctx, pool)
	files := upFiles(dir)
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(files))
}
