package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ai-picks-site/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// ErrSchemaMissing is returned by HealthCheck when the objects table has not
// been created yet
var ErrSchemaMissing = errors.New("content bucket schema not migrated")

// DB is the Postgres store behind the self-hosted content bucket
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// New opens the bucket store and waits up to ConnectTimeout for it to answer
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket store: %w", err)
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("bucket store at %s unreachable: %w", cfg.Host, err)
	}

	db := Wrap(conn, log)
	db.log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int("pool", cfg.MaxOpenConns).
		Msg("Content bucket store connected")

	return db, nil
}

// Wrap adopts an already opened connection
func Wrap(conn *sql.DB, log zerolog.Logger) *DB {
	return &DB{
		DB:  conn,
		log: log.With().Str("component", "bucket_store").Logger(),
	}
}

// RunMigrations brings the objects schema up to date from the SQL files in
// dir. It is safe to call on every start.
func (db *DB) RunMigrations(dir string) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("bucket schema driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("bucket schema source %s: %w", dir, err)
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		db.log.Debug().Str("dir", dir).Msg("Bucket schema already current")
	case err != nil:
		return fmt.Errorf("failed to migrate bucket schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read bucket schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("bucket schema version %d is dirty", version)
	}

	db.log.Info().Uint("schema_version", version).Msg("Bucket schema ready")
	return nil
}

// HealthCheck reports whether the store answers and holds the objects table.
// An unmigrated store is unhealthy because every page read would fail.
func (db *DB) HealthCheck(ctx context.Context) error {
	var table sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT to_regclass('public.objects')::text`).Scan(&table); err != nil {
		return fmt.Errorf("bucket store health: %w", err)
	}
	if !table.Valid {
		return ErrSchemaMissing
	}
	return nil
}
