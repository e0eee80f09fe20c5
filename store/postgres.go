package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/base"
)

var ErrNoDatabaseURL = errors.New("no database URL configured (DATABASE_URL)")

// DB is the connection pool shared by the repository and the migrations.
type DB struct {
	*pgxpool.Pool
}

// poolConfig applies the configured pool sizing on top of the settings parsed from the URL.
func poolConfig(cfg base.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg.URL == "" {
		return nil, ErrNoDatabaseURL
	}
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	if cfg.MaxConnections > 0 {
		pc.MaxConns = cfg.MaxConnections
	}
	pc.MinConns = cfg.MinConnections
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	return pc, nil
}

// NewConnection opens the pool and pings the database once.
func NewConnection(ctx context.Context, cfg base.DatabaseConfig) (*DB, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed opening database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return &DB{Pool: pool}, nil
}
