package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
)

// PoolScope pins every service to one pool and one season.
type PoolScope struct {
	PoolID int64
	Season int
}

// weekSource assembles immutable week snapshots from the stores. A snapshot
// is either complete or an error wrapping ErrDataUnavailable.
type weekSource struct {
	scope       PoolScope
	picksRepo   pickem.PicksRepository
	featureRepo pickem.FeatureRepository
	matches     pickem.MatchProvider
}

func (s weekSource) load(ctx context.Context, week pickem.Week) (pickem.WeekSnapshot, error) {
	matches, err := s.matches.ListMatches(ctx, s.scope.Season, week)
	if err != nil {
		return pickem.WeekSnapshot{}, fmt.Errorf("%w: list matches week=%d: %w", ErrDataUnavailable, week, err)
	}

	records, err := s.picksRepo.ListWeekPicks(ctx, s.scope.PoolID, s.scope.Season, week)
	if err != nil {
		return pickem.WeekSnapshot{}, fmt.Errorf("%w: list week picks week=%d: %w", ErrDataUnavailable, week, err)
	}

	snapshot := pickem.WeekSnapshot{Week: week, Matches: matches, Records: records}
	feature, ok, err := s.featureRepo.GetFeature(ctx, s.scope.Season, week)
	if err != nil {
		return pickem.WeekSnapshot{}, fmt.Errorf("%w: get feature week=%d: %w", ErrDataUnavailable, week, err)
	}
	if ok {
		snapshot.Feature = &feature
	}
	return snapshot, nil
}

// seasonWeeks returns the weeks played so far: 1 through the latest week any
// pooler was primed for.
func (s weekSource) seasonWeeks(ctx context.Context) ([]pickem.Week, error) {
	current, ok, err := s.picksRepo.CurrentWeek(ctx, s.scope.PoolID, s.scope.Season)
	if err != nil {
		return nil, fmt.Errorf("%w: find current week: %w", ErrDataUnavailable, err)
	}
	if !ok {
		return nil, nil
	}
	return pickem.WeeksThrough(current), nil
}

func validateWeek(week pickem.Week) error {
	if !week.Valid() {
		return fmt.Errorf("%w: week=%d", ErrInvalidInput, week)
	}
	return nil
}

func normalizeWorkerCount(requested, tasks int) int {
	if requested <= 0 {
		requested = 4
	}
	if tasks > 0 && requested > tasks {
		return tasks
	}
	return requested
}
