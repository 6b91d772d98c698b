package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

var (
	newPool = pgxpool.New
	pingDB  = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
)

// InitPostgres connects the package-level pool. View tracking is optional,
// so callers decide whether a failure here is fatal.
func InitPostgres(ctx context.Context, databaseURL string) error {
	pool, err := newPool(ctx, databaseURL)
	if err != nil {
		return err
	}
	if err := pingDB(ctx, pool); err != nil {
		pool.Close()
		return err
	}
	Pool = pool
	log.Println("Connected to Postgres")
	return nil
}

func ClosePostgres() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
