package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

func newStatsService(picksRepo *stubPicksRepository, features *stubFeatureRepository, matches *stubMatchProvider) *StatsService {
	return NewStatsService(testScope, pickem.DefaultScorer(), picksRepo, features, matches, 3, logging.NewNop())
}

func TestStatsService_PoolStats(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newSeasonFixture()
	kickoff := scoringNow.Add(-72 * time.Hour)
	matches.byWeek[1] = append(matches.byWeek[1], finalMatch("w1b", "DAL", "PHI", 13, 31, kickoff))
	for i := range picksRepo.records[1] {
		picksRepo.records[1][i].Picks["w1b"] = "PHI"
	}
	picksRepo.records[1][0].FeaturePick = sidePtr(pickem.FeatureUnder)
	picksRepo.records[1][1].FeaturePick = sidePtr(pickem.FeatureOver)
	features.byWeek = map[pickem.Week]pickem.FeatureMatch{1: {MatchID: "w1b", TargetTotal: 40}}

	got, err := newStatsService(picksRepo, features, matches).PoolStats(context.Background())
	if err != nil {
		t.Fatalf("pool stats: %v", err)
	}

	// Week 1: w1b is unanimous and won, A is alone on NE and won.
	// Week 2: A's record is cached without picks, so B and C are each alone.
	if got.Unanimous != (pickem.Rate{Hits: 1, Attempts: 1}) {
		t.Fatalf("unexpected unanimous rate: %+v", got.Unanimous)
	}
	if got.Unique != (pickem.Rate{Hits: 2, Attempts: 3}) {
		t.Fatalf("unexpected unique rate: %+v", got.Unique)
	}
	if got.OverUnder != (pickem.Rate{Hits: 1, Attempts: 2}) {
		t.Fatalf("unexpected over/under rate: %+v", got.OverUnder)
	}
	if len(got.Poolers) != 3 || got.Poolers[0].Name != "A" {
		t.Fatalf("unexpected poolers: %+v", got.Poolers)
	}
	if got.Poolers[2].Unique != (pickem.Rate{Hits: 0, Attempts: 1}) {
		t.Fatalf("unexpected stats for C: %+v", got.Poolers[2])
	}
}

func TestStatsService_PoolStats_ProviderFailure(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newSeasonFixture()
	matches.errs = map[pickem.Week]error{1: errors.New("connection reset")}

	_, err := newStatsService(picksRepo, features, matches).PoolStats(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestStatsService_TeamBlame(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newSeasonFixture()
	service := newStatsService(picksRepo, features, matches)

	got, err := service.TeamBlame(context.Background(), "New York Jets")
	if err != nil {
		t.Fatalf("team blame: %v", err)
	}
	if got.Team != "NYJ" || got.Gained != 0 || got.Lost != 4 {
		t.Fatalf("unexpected blame report: %+v", got)
	}
	if len(got.Entries) != 2 || got.Entries[0].PoolerID != 2 || got.Entries[0].Lost != 2 {
		t.Fatalf("unexpected blame entries: %+v", got.Entries)
	}

	if _, err := service.TeamBlame(context.Background(), "Springfield Atoms"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
