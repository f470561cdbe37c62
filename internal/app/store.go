package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-pool/internal/config"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-pool/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	qb "github.com/riskibarqy/pickem-pool/internal/platform/querybuilder"
)

type stores struct {
	picks    pickem.PicksRepository
	features pickem.FeatureRepository
	close    func() error
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory, "":
		picksRepo := memory.NewPicksRepository()
		seeded := memory.SeedPoolers(picksRepo, cfg.PoolID, cfg.SeedPoolers)
		logger.Info("store ready", "driver", config.StoreMemory, "poolers", len(seeded))
		return stores{
			picks:    picksRepo,
			features: memory.NewFeatureRepository(),
			close:    func() error { return nil },
		}, nil
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		return sqlStores(ctx, cfg, db, qb.DialectPostgres, logger)
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		return sqlStores(ctx, cfg, db, qb.DialectSQLite, logger)
	default:
		return stores{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func sqlStores(ctx context.Context, cfg config.Config, db *sqlx.DB, dialect qb.Dialect, logger *logging.Logger) (stores, error) {
	if err := postgres.BootstrapSeed(ctx, db, dialect, cfg.PoolID, cfg.SeedPoolers); err != nil {
		_ = db.Close()
		return stores{}, fmt.Errorf("bootstrap seed poolers: %w", err)
	}
	logger.Info("store ready", "driver", cfg.StoreDriver, "seed_poolers", len(cfg.SeedPoolers))
	return stores{
		picks:    postgres.NewPicksRepository(db, dialect),
		features: postgres.NewFeatureRepository(db, dialect),
		close:    db.Close,
	}, nil
}
