package pickem

import "context"

// PicksRepository is the picks store of one pool.
type PicksRepository interface {
	ListPoolers(ctx context.Context, poolID int64) ([]Pooler, error)
	GetPooler(ctx context.Context, poolerID int64) (Pooler, bool, error)
	UpdateFavoriteTeam(ctx context.Context, poolerID int64, team string) error
	// ListWeekPicks returns one record per pooler of the pool, ordered by
	// pooler id, including poolers without a pick record.
	ListWeekPicks(ctx context.Context, poolID int64, season int, week Week) ([]WeekPicks, error)
	GetWeekPicks(ctx context.Context, poolerID int64, season int, week Week) (WeekPicks, bool, error)
	// CacheResult stores score and featureScore together. Writing an
	// already cached record is a no-op.
	CacheResult(ctx context.Context, pickRecordID int64, score, featureScore int) error
	PrimePicks(ctx context.Context, poolerID int64, season int, week Week) (PrimeResult, error)
	// SavePicks returns false when the record is missing, already holds
	// picks, or is cached.
	SavePicks(ctx context.Context, pickRecordID int64, picks Pick, feature *FeatureSide) (bool, error)
	// CurrentWeek is the latest week any pooler of the pool was primed for.
	CurrentWeek(ctx context.Context, poolID int64, season int) (Week, bool, error)
}

// FeatureRepository stores the designated over/under match per week.
type FeatureRepository interface {
	GetFeature(ctx context.Context, season int, week Week) (FeatureMatch, bool, error)
	UpsertFeature(ctx context.Context, season int, week Week, feature FeatureMatch) error
}

// MatchProvider reads the schedule and results of a week.
type MatchProvider interface {
	ListMatches(ctx context.Context, season int, week Week) ([]Match, error)
}
