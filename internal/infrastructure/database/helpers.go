package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Close closes the pool. Safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool")
	db.Pool.Close()
	db.Pool = nil

	return nil
}

// PoolStats is a snapshot of pool counters, reported by the health endpoint.
type PoolStats struct {
	AcquiredConns      int32         `json:"acquiredConns"`
	IdleConns          int32         `json:"idleConns"`
	TotalConns         int32         `json:"totalConns"`
	MaxConns           int32         `json:"maxConns"`
	AcquireCount       int64         `json:"acquireCount"`
	EmptyAcquireCount  int64         `json:"emptyAcquireCount"`
	AverageAcquireTime time.Duration `json:"averageAcquireTimeNs"`
}

// Stats returns the current pool statistics.
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db == nil || db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:      raw.AcquiredConns(),
		IdleConns:          raw.IdleConns(),
		TotalConns:         raw.TotalConns(),
		MaxConns:           raw.MaxConns(),
		AcquireCount:       raw.AcquireCount(),
		EmptyAcquireCount:  raw.EmptyAcquireCount(),
		AverageAcquireTime: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}
