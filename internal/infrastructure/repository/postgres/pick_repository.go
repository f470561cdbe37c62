package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	qb "github.com/riskibarqy/pickem-pool/internal/platform/querybuilder"
)

type PicksRepository struct {
	store
}

func NewPicksRepository(db *sqlx.DB, dialect qb.Dialect) *PicksRepository {
	return &PicksRepository{store: newStore(db, dialect)}
}

func (r *PicksRepository) ListPoolers(ctx context.Context, poolID int64) ([]pickem.Pooler, error) {
	query, args, err := qb.Select("id", "pool_id", "name", "favorite_team").
		From("poolers").
		Where(qb.Eq("pool_id", poolID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list poolers query: %w", err)
	}

	var rows []poolerTableModel
	if err := r.db.SelectContext(ctx, &rows, r.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list poolers: %w", err)
	}

	out := make([]pickem.Pooler, 0, len(rows))
	for _, row := range rows {
		out = append(out, poolerFromRow(row))
	}
	return out, nil
}

func (r *PicksRepository) GetPooler(ctx context.Context, poolerID int64) (pickem.Pooler, bool, error) {
	query, args, err := qb.Select("id", "pool_id", "name", "favorite_team").
		From("poolers").
		Where(qb.Eq("id", poolerID)).
		ToSQL()
	if err != nil {
		return pickem.Pooler{}, false, fmt.Errorf("build get pooler query: %w", err)
	}

	var row poolerTableModel
	if err := r.db.GetContext(ctx, &row, r.rebind(query), args...); err != nil {
		if isNotFound(err) {
			return pickem.Pooler{}, false, nil
		}
		return pickem.Pooler{}, false, fmt.Errorf("get pooler: %w", err)
	}
	return poolerFromRow(row), true, nil
}

func (r *PicksRepository) UpdateFavoriteTeam(ctx context.Context, poolerID int64, team string) error {
	query, args, err := qb.Update("poolers").
		Set("favorite_team", nullString(team)).
		SetExpr("updated_at", "CURRENT_TIMESTAMP").
		Where(qb.Eq("id", poolerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update favorite team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.rebind(query), args...); err != nil {
		return fmt.Errorf("update favorite team: %w", err)
	}
	return nil
}

func weekPicksSelect(season int, week pickem.Week) *qb.SelectBuilder {
	return qb.Select(
		"p.id AS pooler_id",
		"p.name",
		"k.id AS pick_id",
		"k.pick_string",
		"k.feature_pick",
		"k.score_cache",
		"k.feature_score_cache",
	).
		From("poolers p").
		LeftJoin("picks k", "k.pooler_id = p.id AND k.season = ? AND k.week = ?", season, int(week))
}

func (r *PicksRepository) ListWeekPicks(ctx context.Context, poolID int64, season int, week pickem.Week) ([]pickem.WeekPicks, error) {
	query, args, err := weekPicksSelect(season, week).
		Where(qb.Eq("p.pool_id", poolID)).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list week picks query: %w", err)
	}

	var rows []weekPicksRowModel
	if err := r.db.SelectContext(ctx, &rows, r.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list week picks: %w", err)
	}

	out := make([]pickem.WeekPicks, 0, len(rows))
	for _, row := range rows {
		out = append(out, weekPicksFromRow(row, week))
	}
	return out, nil
}

func (r *PicksRepository) GetWeekPicks(ctx context.Context, poolerID int64, season int, week pickem.Week) (pickem.WeekPicks, bool, error) {
	query, args, err := weekPicksSelect(season, week).
		Where(qb.Eq("p.id", poolerID)).
		ToSQL()
	if err != nil {
		return pickem.WeekPicks{}, false, fmt.Errorf("build get week picks query: %w", err)
	}

	var row weekPicksRowModel
	if err := r.db.GetContext(ctx, &row, r.rebind(query), args...); err != nil {
		if isNotFound(err) {
			return pickem.WeekPicks{}, false, nil
		}
		return pickem.WeekPicks{}, false, fmt.Errorf("get week picks: %w", err)
	}
	if !row.PickID.Valid {
		return pickem.WeekPicks{}, false, nil
	}
	return weekPicksFromRow(row, week), true, nil
}

// CacheResult writes both cached columns in one statement and never
// overwrites an existing cache.
func (r *PicksRepository) CacheResult(ctx context.Context, pickRecordID int64, score, featureScore int) error {
	query, args, err := qb.Update("picks").
		Set("score_cache", score).
		Set("feature_score_cache", featureScore).
		SetExpr("updated_at", "CURRENT_TIMESTAMP").
		Where(qb.Eq("id", pickRecordID), qb.IsNull("score_cache")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build cache result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.rebind(query), args...); err != nil {
		return fmt.Errorf("cache result: %w", err)
	}
	return nil
}

func (r *PicksRepository) PrimePicks(ctx context.Context, poolerID int64, season int, week pickem.Week) (pickem.PrimeResult, error) {
	row, found, err := r.findPickRecord(ctx, poolerID, season, week)
	if err != nil {
		return pickem.PrimeResult{}, err
	}
	if found {
		return primeResultFromRow(row), nil
	}

	query, args, err := qb.InsertModel("picks", pickInsertModel{
		Season:   season,
		Week:     int(week),
		PoolerID: poolerID,
	}, "ON CONFLICT (season, week, pooler_id) DO NOTHING")
	if err != nil {
		return pickem.PrimeResult{}, fmt.Errorf("build prime picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.rebind(query), args...); err != nil {
		return pickem.PrimeResult{}, fmt.Errorf("prime picks: %w", err)
	}

	row, found, err = r.findPickRecord(ctx, poolerID, season, week)
	if err != nil {
		return pickem.PrimeResult{}, err
	}
	if !found {
		return pickem.PrimeResult{}, fmt.Errorf("prime picks: record missing after insert pooler=%d week=%d", poolerID, week)
	}
	return primeResultFromRow(row), nil
}

func (r *PicksRepository) findPickRecord(ctx context.Context, poolerID int64, season int, week pickem.Week) (pickPrimeRowModel, bool, error) {
	query, args, err := qb.Select("id", "pick_string").
		From("picks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", int(week)),
			qb.Eq("pooler_id", poolerID),
		).
		ToSQL()
	if err != nil {
		return pickPrimeRowModel{}, false, fmt.Errorf("build find pick record query: %w", err)
	}

	var row pickPrimeRowModel
	if err := r.db.GetContext(ctx, &row, r.rebind(query), args...); err != nil {
		if isNotFound(err) {
			return pickPrimeRowModel{}, false, nil
		}
		return pickPrimeRowModel{}, false, fmt.Errorf("find pick record: %w", err)
	}
	return row, true, nil
}

func (r *PicksRepository) SavePicks(ctx context.Context, pickRecordID int64, picks pickem.Pick, feature *pickem.FeatureSide) (bool, error) {
	encoded, err := encodePicks(picks)
	if err != nil {
		return false, fmt.Errorf("encode picks: %w", err)
	}

	query, args, err := qb.Update("picks").
		Set("pick_string", encoded).
		Set("feature_pick", encodeFeatureSide(feature)).
		SetExpr("updated_at", "CURRENT_TIMESTAMP").
		Where(qb.Eq("id", pickRecordID), qb.IsNull("pick_string"), qb.IsNull("score_cache")).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build save picks query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("save picks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save picks rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PicksRepository) CurrentWeek(ctx context.Context, poolID int64, season int) (pickem.Week, bool, error) {
	query, args, err := qb.Select("week").
		From("picks").
		Where(
			qb.Eq("season", season),
			qb.Expr("pooler_id IN (SELECT id FROM poolers WHERE pool_id = ?)", poolID),
		).
		OrderBy("week DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build current week query: %w", err)
	}

	var week int64
	if err := r.db.GetContext(ctx, &week, r.rebind(query), args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("current week: %w", err)
	}
	return pickem.Week(week), true, nil
}

func poolerFromRow(row poolerTableModel) pickem.Pooler {
	return pickem.Pooler{
		ID:           row.ID,
		PoolID:       row.PoolID,
		Name:         row.Name,
		FavoriteTeam: row.FavoriteTeam.String,
	}
}

func weekPicksFromRow(row weekPicksRowModel, week pickem.Week) pickem.WeekPicks {
	out := pickem.WeekPicks{
		PickRecordID:       nullInt64Ptr(row.PickID),
		PoolerID:           row.PoolerID,
		Name:               row.Name,
		Week:               week,
		CachedScore:        nullIntPtr(row.ScoreCache),
		CachedFeatureScore: nullIntPtr(row.FeatureScoreCache),
	}

	picks, ok := decodePicks(row.PickString)
	if !ok {
		out.Unreadable = true
	}
	out.Picks = picks

	feature, ok := decodeFeatureSide(row.FeaturePick)
	if !ok {
		out.FeatureUnreadable = true
	}
	out.FeaturePick = feature
	return out
}

func primeResultFromRow(row pickPrimeRowModel) pickem.PrimeResult {
	status := pickem.PrimeStatusPrimed
	if row.PickString.Valid && row.PickString.String != "" {
		status = pickem.PrimeStatusFilled
	}
	return pickem.PrimeResult{PickRecordID: row.ID, Status: status}
}
