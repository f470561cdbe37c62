package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

// SeasonStandings ranks the pool through the latest primed week.
type SeasonStandings struct {
	Season  int
	Through pickem.Week
	Entries []pickem.SeasonEntry
}

type SeasonService struct {
	scoring *ScoringService
	workers int
	logger  *logging.Logger
}

func NewSeasonService(scoring *ScoringService, workers int, logger *logging.Logger) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{
		scoring: scoring,
		workers: workers,
		logger:  logger,
	}
}

// Standings scores every week of the season concurrently, then folds the
// weeks in canonical order. Entries are sorted by total, descending; equal
// totals keep pooler order.
func (s *SeasonService) Standings(ctx context.Context) (_ SeasonStandings, err error) {
	scope := s.scoring.source.scope
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Standings", scopeAttrs(scope)...)
	defer func() { endSpan(span, err) }()

	poolers, err := s.scoring.picksRepo.ListPoolers(ctx, scope.PoolID)
	if err != nil {
		return SeasonStandings{}, fmt.Errorf("%w: list poolers: %w", ErrDataUnavailable, err)
	}
	weeks, err := s.scoring.source.seasonWeeks(ctx)
	if err != nil {
		return SeasonStandings{}, err
	}

	weekly, err := s.scoreWeeks(ctx, weeks)
	if err != nil {
		return SeasonStandings{}, err
	}

	entries := make([]pickem.SeasonEntry, len(poolers))
	for i, p := range poolers {
		entries[i] = pickem.SeasonEntry{PoolerID: p.ID, Name: p.Name, PerWeekScores: make([]int, 0, len(weeks))}
	}
	for _, result := range weekly {
		totals := make(map[int64]int, len(result.Results))
		for _, r := range result.Results {
			totals[r.PoolerID] = r.Total()
		}
		for i := range entries {
			entries[i].AddWeek(totals[entries[i].PoolerID])
		}
	}
	s.logger.DebugContext(ctx, "season standings computed",
		"season", scope.Season,
		"weeks", len(weeks),
		"poolers", len(entries),
	)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	out := SeasonStandings{Season: scope.Season, Entries: entries}
	if len(weeks) > 0 {
		out.Through = weeks[len(weeks)-1]
	}
	return out, nil
}

// scoreWeeks runs ScoreWeek on an ants pool. Results keep the order of weeks;
// the first failing week, in week order, aborts the whole season.
func (s *SeasonService) scoreWeeks(ctx context.Context, weeks []pickem.Week) ([]WeekResult, error) {
	if len(weeks) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(normalizeWorkerCount(s.workers, len(weeks)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]WeekResult, len(weeks))
	errs := make([]error, len(weeks))

	var workers sync.WaitGroup
	for i, week := range weeks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[i], errs[i] = s.scoring.ScoreWeek(ctx, week)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit week %d to worker pool: %w", week, err)
		}
	}
	workers.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("score week %d: %w", weeks[i], err)
		}
	}
	return results, nil
}

// WarmResult summarises one cache warm run.
type WarmResult struct {
	Season    int
	Weeks     int
	Cacheable int
}

// Warm scores the whole season so every finished week gets written to the
// score cache.
func (s *SeasonService) Warm(ctx context.Context) (_ WarmResult, err error) {
	scope := s.scoring.source.scope
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Warm", scopeAttrs(scope)...)
	defer func() { endSpan(span, err) }()

	weeks, err := s.scoring.source.seasonWeeks(ctx)
	if err != nil {
		return WarmResult{}, err
	}
	weekly, err := s.scoreWeeks(ctx, weeks)
	if err != nil {
		return WarmResult{}, err
	}

	out := WarmResult{Season: scope.Season, Weeks: len(weeks)}
	for _, result := range weekly {
		for _, r := range result.Results {
			if r.ShouldCache {
				out.Cacheable++
			}
		}
	}
	s.logger.InfoContext(ctx, "score cache warmed",
		"season", scope.Season,
		"weeks", out.Weeks,
		"cacheable", out.Cacheable,
	)
	return out, nil
}
