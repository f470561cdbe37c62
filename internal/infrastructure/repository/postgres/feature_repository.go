package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	qb "github.com/riskibarqy/pickem-pool/internal/platform/querybuilder"
)

type FeatureRepository struct {
	store
}

func NewFeatureRepository(db *sqlx.DB, dialect qb.Dialect) *FeatureRepository {
	return &FeatureRepository{store: newStore(db, dialect)}
}

func (r *FeatureRepository) GetFeature(ctx context.Context, season int, week pickem.Week) (pickem.FeatureMatch, bool, error) {
	query, args, err := qb.Select("match_id", "target_total").
		From("weekly_features").
		Where(qb.Eq("season", season), qb.Eq("week", int(week))).
		ToSQL()
	if err != nil {
		return pickem.FeatureMatch{}, false, fmt.Errorf("build get feature query: %w", err)
	}

	var row featureTableModel
	if err := r.db.GetContext(ctx, &row, r.rebind(query), args...); err != nil {
		if isNotFound(err) {
			return pickem.FeatureMatch{}, false, nil
		}
		return pickem.FeatureMatch{}, false, fmt.Errorf("get feature: %w", err)
	}
	return pickem.FeatureMatch{MatchID: row.MatchID, TargetTotal: row.TargetTotal}, true, nil
}

func (r *FeatureRepository) UpsertFeature(ctx context.Context, season int, week pickem.Week, feature pickem.FeatureMatch) error {
	query, args, err := qb.InsertModel("weekly_features", featureInsertModel{
		Season:      season,
		Week:        int(week),
		MatchID:     feature.MatchID,
		TargetTotal: feature.TargetTotal,
	}, `ON CONFLICT (season, week) DO UPDATE
SET match_id = EXCLUDED.match_id,
    target_total = EXCLUDED.target_total,
    updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("build upsert feature query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.rebind(query), args...); err != nil {
		return fmt.Errorf("upsert feature: %w", err)
	}
	return nil
}
