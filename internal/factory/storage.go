// Package factory selects concrete adapters based on configuration.
package factory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hogar-app/hogar/internal/config"
	"github.com/hogar-app/hogar/internal/health"
	"github.com/hogar-app/hogar/internal/store"
	"github.com/hogar-app/hogar/internal/store/postgres"
	"github.com/hogar-app/hogar/internal/store/sqlite"
)

// dbPinger adapts *sql.DB to the health prober.
type dbPinger struct{ db *sql.DB }

func (p dbPinger) HealthPing(ctx context.Context) error { return p.db.PingContext(ctx) }

// NewStore selects the store adapter based on cfg.DBDriver and returns it
// along with a pinger for the health checker.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, *sql.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		st, err := sqlite.New(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return st, db, nil
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres unreachable: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Msg("postgres store ready")
		return postgres.NewWithDB(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// NewStorePinger wraps the store's database handle for periodic health probes.
func NewStorePinger(db *sql.DB) health.HealthPinger { return dbPinger{db: db} }
