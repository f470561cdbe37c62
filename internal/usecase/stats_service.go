package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// PoolStats holds the season hit rates of the pool and of each pooler.
type PoolStats struct {
	Season    int
	Through   pickem.Week
	Unanimous pickem.Rate
	Unique    pickem.Rate
	OverUnder pickem.Rate
	Poolers   []pickem.PoolerStats
}

// BlameReport is what one team earned and cost the pool over the season.
type BlameReport struct {
	Season  int
	Through pickem.Week
	Team    string
	Gained  int
	Lost    int
	Entries []pickem.BlameEntry
}

type StatsService struct {
	source  weekSource
	scorer  pickem.Scorer
	workers int
	logger  *logging.Logger
}

func NewStatsService(
	scope PoolScope,
	scorer pickem.Scorer,
	picksRepo pickem.PicksRepository,
	featureRepo pickem.FeatureRepository,
	matches pickem.MatchProvider,
	workers int,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		source: weekSource{
			scope:       scope,
			picksRepo:   picksRepo,
			featureRepo: featureRepo,
			matches:     matches,
		},
		scorer:  scorer,
		workers: workers,
		logger:  logger,
	}
}

type weekStats struct {
	week pickem.Week
	acc  *pickem.StatsAccumulator
}

func (s *StatsService) PoolStats(ctx context.Context) (_ PoolStats, err error) {
	scope := s.source.scope
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PoolStats", scopeAttrs(scope)...)
	defer func() { endSpan(span, err) }()

	poolers, err := s.source.picksRepo.ListPoolers(ctx, scope.PoolID)
	if err != nil {
		return PoolStats{}, fmt.Errorf("%w: list poolers: %w", ErrDataUnavailable, err)
	}
	weeks, err := s.source.seasonWeeks(ctx)
	if err != nil {
		return PoolStats{}, err
	}

	p := pool.NewWithResults[weekStats]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(normalizeWorkerCount(s.workers, len(weeks)))
	for _, week := range weeks {
		p.Go(func(ctx context.Context) (weekStats, error) {
			snapshot, err := s.source.load(ctx, week)
			if err != nil {
				return weekStats{}, err
			}
			acc := pickem.NewStatsAccumulator()
			acc.AddWeek(snapshot)
			return weekStats{week: week, acc: acc}, nil
		})
	}
	perWeek, err := p.Wait()
	if err != nil {
		return PoolStats{}, fmt.Errorf("gather weekly stats: %w", err)
	}
	sort.Slice(perWeek, func(i, j int) bool { return perWeek[i].week < perWeek[j].week })

	total := pickem.NewStatsAccumulator()
	for _, pooler := range poolers {
		total.Register(pooler.ID, pooler.Name)
	}
	for _, ws := range perWeek {
		total.Merge(ws.acc)
	}

	out := PoolStats{
		Season:    scope.Season,
		Unanimous: total.Unanimous,
		Unique:    total.Unique,
		OverUnder: total.OverUnder,
		Poolers:   total.Poolers(),
	}
	if len(weeks) > 0 {
		out.Through = weeks[len(weeks)-1]
	}
	return out, nil
}

// TeamBlame reports, per pooler, the points a team earned them and the
// points they gave up by backing it in losses.
func (s *StatsService) TeamBlame(ctx context.Context, team string) (_ BlameReport, err error) {
	scope := s.source.scope
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamBlame", scopeAttrs(scope)...)
	defer func() { endSpan(span, err) }()

	code, ok := pickem.TeamCodeFromName(team)
	if !ok {
		return BlameReport{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}

	weeks, err := s.source.seasonWeeks(ctx)
	if err != nil {
		return BlameReport{}, err
	}

	p := pool.NewWithResults[pickem.WeekSnapshot]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(normalizeWorkerCount(s.workers, len(weeks)))
	for _, week := range weeks {
		p.Go(func(ctx context.Context) (pickem.WeekSnapshot, error) {
			return s.source.load(ctx, week)
		})
	}
	snapshots, err := p.Wait()
	if err != nil {
		return BlameReport{}, fmt.Errorf("load season weeks: %w", err)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Week < snapshots[j].Week })

	blame := pickem.NewTeamBlame(code)
	for _, snapshot := range snapshots {
		s.scorer.BlameWeek(blame, snapshot)
	}

	out := BlameReport{
		Season:  scope.Season,
		Team:    blame.Team,
		Gained:  blame.Gained,
		Lost:    blame.Lost,
		Entries: blame.Entries(),
	}
	if len(weeks) > 0 {
		out.Through = weeks[len(weeks)-1]
	}
	s.logger.DebugContext(ctx, "team blame computed", "team", code, "weeks", len(weeks))
	return out, nil
}
