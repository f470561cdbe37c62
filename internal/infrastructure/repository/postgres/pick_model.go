package postgres

import "database/sql"

type poolerTableModel struct {
	ID           int64          `db:"id"`
	PoolID       int64          `db:"pool_id"`
	Name         string         `db:"name"`
	FavoriteTeam sql.NullString `db:"favorite_team"`
}

type poolerInsertModel struct {
	PoolID       int64          `db:"pool_id"`
	Name         string         `db:"name"`
	FavoriteTeam sql.NullString `db:"favorite_team"`
}

// weekPicksRowModel is one pooler LEFT JOIN its pick record for a week.
type weekPicksRowModel struct {
	PoolerID          int64          `db:"pooler_id"`
	Name              string         `db:"name"`
	PickID            sql.NullInt64  `db:"pick_id"`
	PickString        sql.NullString `db:"pick_string"`
	FeaturePick       sql.NullString `db:"feature_pick"`
	ScoreCache        sql.NullInt64  `db:"score_cache"`
	FeatureScoreCache sql.NullInt64  `db:"feature_score_cache"`
}

type pickInsertModel struct {
	Season   int   `db:"season"`
	Week     int   `db:"week"`
	PoolerID int64 `db:"pooler_id"`
}

type pickPrimeRowModel struct {
	ID         int64          `db:"id"`
	PickString sql.NullString `db:"pick_string"`
}

type featureTableModel struct {
	MatchID     string `db:"match_id"`
	TargetTotal int    `db:"target_total"`
}

type featureInsertModel struct {
	Season      int    `db:"season"`
	Week        int    `db:"week"`
	MatchID     string `db:"match_id"`
	TargetTotal int    `db:"target_total"`
}
