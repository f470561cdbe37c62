package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	qb "github.com/riskibarqy/pickem-pool/internal/platform/querybuilder"
)

// BootstrapSeed inserts poolers into an empty pool. A pool that already has
// poolers is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, dialect qb.Dialect, poolID int64, poolers []pickem.Pooler) error {
	if len(poolers) == 0 {
		return nil
	}
	s := newStore(db, dialect)

	countQuery, countArgs, err := qb.Select("COUNT(1)").
		From("poolers").
		Where(qb.Eq("pool_id", poolID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build count poolers query: %w", err)
	}
	var count int
	if err := db.GetContext(ctx, &count, s.rebind(countQuery), countArgs...); err != nil {
		return fmt.Errorf("count poolers for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range poolers {
		query, args, err := qb.InsertModel("poolers", poolerInsertModel{
			PoolID:       poolID,
			Name:         p.Name,
			FavoriteTeam: nullString(p.FavoriteTeam),
		}, "")
		if err != nil {
			return fmt.Errorf("build seed pooler %s query: %w", p.Name, err)
		}
		if _, err := tx.ExecContext(ctx, s.rebind(query), args...); err != nil {
			return fmt.Errorf("seed pooler %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
