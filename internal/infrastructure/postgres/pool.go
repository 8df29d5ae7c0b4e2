package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/viverodavinci/vivero-api/pkg/config"
)

// PoolOptions tamaños del pool; los valores cero usan los defaults.
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// NewPool crea el pool PostgreSQL a partir de DATABASE_URL o de DB_HOST/DB_PORT/...
// y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig, opts ...PoolOptions) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	if len(opts) > 0 {
		if opts[0].MaxConns > 0 {
			poolConfig.MaxConns = opts[0].MaxConns
		}
		if opts[0].MinConns > 0 {
			poolConfig.MinConns = opts[0].MinConns
		}
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones (precios y totales).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
