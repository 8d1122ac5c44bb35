package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

var pgPool *pgxpool.Pool

func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

func GetPoolMax() int32 {
	v := os.Getenv("DB_POOL_MAX")
	if v == "" {
		return 10
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 10
	}
	return int32(n)
}

func BootDB(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	cfg.MaxConns = GetPoolMax()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if pgPool == nil {
		pgPool = pool
	}

	if err := Migrate(ctx, pgPool); err != nil {
		return pgPool, err
	}

	return pgPool, nil
}

// Migrate declares the schema, including the ON DELETE CASCADE rules the
// services depend on for child deletion: the association and schedule rows
// go away with the child without any extra statement from the application.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
	CREATE TABLE IF NOT EXISTS children (
	id SERIAL PRIMARY KEY,
	full_name VARCHAR(150) NOT NULL,
	cpf VARCHAR(14) NOT NULL UNIQUE,
	birth_date DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS child_parents (
	id SERIAL PRIMARY KEY,
	parent_id INTEGER NOT NULL,
	child_id INTEGER NOT NULL REFERENCES children(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS schedules (
	id SERIAL PRIMARY KEY,
	child_id INTEGER NOT NULL REFERENCES children(id) ON DELETE CASCADE,
	title VARCHAR(150) NOT NULL,
	description TEXT,
	starts_at TIMESTAMPTZ NOT NULL,
	ends_at TIMESTAMPTZ NOT NULL,
	schedule_type VARCHAR(50) NOT NULL,
	created_by INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	name VARCHAR(150) NOT NULL,
	email VARCHAR(150) NOT NULL UNIQUE,
	password VARCHAR(100) NOT NULL,
	telephone VARCHAR(20),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS reminder_logs (
	id SERIAL PRIMARY KEY,
	schedule_id INTEGER NOT NULL,
	child_id INTEGER NOT NULL,
	parent_id INTEGER NOT NULL,
	whatsapp_status BOOLEAN NOT NULL,
	email_status BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// OwnershipChecks reports whether delete/list/create paths must verify the
// caller actually owns the referenced child. Off by default: the permissive
// behavior is the documented one, the strict mode is opt-in.
func OwnershipChecks() bool {
	return os.Getenv("OWNERSHIP_CHECKS") == "true"
}
