package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/adanyl0v/go-todo-app/internal/config"
	"github.com/adanyl0v/go-todo-app/internal/migrations"
)

var (
	globalPostgresPool *pgxpool.Pool
	// globalPostgresDB shares globalPostgresPool through database/sql.
	globalPostgresDB *sql.DB
)

func postgresURL(cfg config.PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)
}

func MustConnectPostgres() {
	cfg := config.Global().Postgres

	poolCfg, err := pgxpool.ParseConfig(postgresURL(cfg))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}

	globalPostgresDB = stdlib.OpenDBFromPool(globalPostgresPool)
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
}

func MustMigratePostgres() {
	err := migrations.Up(context.Background(), globalPostgresDB)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate postgres")
		panic(err)
	}
	globalLogger.Info().Msg("migrated postgres")
}

func DisconnectPostgres() {
	if err := globalPostgresDB.Close(); err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to close postgres db")
	}
	globalPostgresPool.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}
