package db

import (
	"context"
	"time"

	"wallettally/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the ledger database pool and verifies it is reachable
// before the server starts taking money-moving requests.
func Connect(dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid database url", "error", err)
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "wallettally"

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected", "max_conns", cfg.MaxConns)
	return pool
}
