package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// Runs every .sql file in the migrations directory in lexical order
// (001, 002, ...) on a single connection, stopping at the first failure.
func main() {
	_ = godotenv.Load() // ignore missing file

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db connection error: %v", err)
	}
	defer conn.Close(context.Background())

	files, err := listMigrations(dir)
	if err != nil {
		log.Fatalf("read migrations: %v", err)
	}
	if len(files) == 0 {
		log.Printf("no migration files found in %s", dir)
		return
	}

	for _, file := range files {
		contents, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("read %s: %v", file, err)
		}

		log.Printf("running migration %s", filepath.Base(file))
		// Exec without arguments uses the simple protocol, so a file may
		// contain multiple statements.
		if _, err := conn.Exec(ctx, string(contents)); err != nil {
			log.Fatalf("migration %s failed: %v", filepath.Base(file), err)
		}
	}

	log.Printf("applied %d migrations", len(files))
}

func listMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
