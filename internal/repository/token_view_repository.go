package repository

import (
	"context"
	"time"

	"github.com/abxglia/farcaster-top-signals-browser/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createTokenViewsTable = `
CREATE TABLE IF NOT EXISTS token_views (
    id         BIGSERIAL   PRIMARY KEY,
    symbol     TEXT        NOT NULL,
    source     TEXT        NOT NULL DEFAULT 'web',
    viewed_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_token_views_symbol_time
    ON token_views (symbol, viewed_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// TokenViewRepository records detail-screen visits for usage analytics.
type TokenViewRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewTokenViewRepository(pool PgxPool, tracer trace.Tracer) *TokenViewRepository {
	return &TokenViewRepository{pool: pool, tracer: tracer}
}

func (r *TokenViewRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "token-view-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createTokenViewsTable)
	return err
}

func (r *TokenViewRepository) RecordView(ctx context.Context, view domain.TokenView) error {
	_, span := r.tracer.Start(ctx, "token-view-repo.record-view")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO token_views (symbol, source, viewed_at) VALUES ($1, $2, $3)`,
		view.Symbol, view.Source, view.ViewedAt,
	)
	return err
}

// CountBySymbol returns view counts per symbol since the given time,
// most viewed first.
func (r *TokenViewRepository) CountBySymbol(ctx context.Context, since time.Time) (map[string]int64, error) {
	_, span := r.tracer.Start(ctx, "token-view-repo.count-by-symbol")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT symbol, COUNT(*) FROM token_views
		 WHERE viewed_at >= $1
		 GROUP BY symbol
		 ORDER BY COUNT(*) DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var symbol string
		var count int64
		if err := rows.Scan(&symbol, &count); err != nil {
			return nil, err
		}
		counts[symbol] = count
	}
	return counts, rows.Err()
}

func (r *TokenViewRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	_, span := r.tracer.Start(ctx, "token-view-repo.delete-older-than")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM token_views WHERE viewed_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
