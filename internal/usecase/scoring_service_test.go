package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

var scoringNow = time.Date(2024, 9, 20, 12, 0, 0, 0, time.UTC)

func newScoringFixture() (*stubPicksRepository, *stubFeatureRepository, *stubMatchProvider) {
	kickoff := scoringNow.Add(-72 * time.Hour)
	picksRepo := &stubPicksRepository{
		poolers: []pickem.Pooler{
			{ID: 1, PoolID: 1, Name: "A"},
			{ID: 2, PoolID: 1, Name: "B"},
			{ID: 3, PoolID: 1, Name: "C"},
		},
		records: map[pickem.Week][]pickem.WeekPicks{
			2: {
				{PickRecordID: int64Ptr(11), PoolerID: 1, Picks: pickem.Pick{"m1": "BUF", "m2": "DEN"}, FeaturePick: sidePtr(pickem.FeatureOver)},
				{PickRecordID: int64Ptr(12), PoolerID: 2, Picks: pickem.Pick{"m1": "MIA", "m2": "DEN"}, FeaturePick: sidePtr(pickem.FeatureUnder)},
				{PickRecordID: int64Ptr(13), PoolerID: 3, Picks: pickem.Pick{"m1": "MIA", "m2": "DEN"}},
			},
		},
		current: 2,
	}
	features := &stubFeatureRepository{byWeek: map[pickem.Week]pickem.FeatureMatch{
		2: {MatchID: "m1", TargetTotal: 35},
	}}
	matches := &stubMatchProvider{byWeek: map[pickem.Week][]pickem.Match{
		2: {
			finalMatch("m1", "BUF", "MIA", 24, 17, kickoff),
			finalMatch("m2", "KC", "DEN", 10, 20, kickoff),
		},
	}}
	return picksRepo, features, matches
}

func TestScoringService_ScoreWeek_CachesCompleteWeek(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newScoringFixture()
	service := NewScoringService(testScope, pickem.DefaultScorer(), picksRepo, features, matches, logging.NewNop())
	service.now = func() time.Time { return scoringNow }

	got, err := service.ScoreWeek(context.Background(), 2)
	if err != nil {
		t.Fatalf("score week: %v", err)
	}
	if !got.Complete || got.Season != testScope.Season || got.Feature == nil {
		t.Fatalf("unexpected week result: %+v", got)
	}

	want := []cacheWrite{
		{recordID: 11, score: 6, featureScore: 3},
		{recordID: 12, score: 2, featureScore: 0},
		{recordID: 13, score: 2, featureScore: 0},
	}
	writes := picksRepo.sortedWrites()
	if len(writes) != len(want) {
		t.Fatalf("unexpected cache writes: got=%+v want=%+v", writes, want)
	}
	for i := range want {
		if writes[i] != want[i] {
			t.Fatalf("unexpected cache write %d: got=%+v want=%+v", i, writes[i], want[i])
		}
	}
}

func TestScoringService_ScoreWeek_InProgressWeekIsNotCached(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newScoringFixture()
	matches.byWeek[2][1].Kickoff = scoringNow.Add(-2 * time.Hour)
	matches.byWeek[2][1].AwayScore = nil
	matches.byWeek[2][1].HomeScore = nil

	service := NewScoringService(testScope, pickem.DefaultScorer(), picksRepo, features, matches, logging.NewNop())
	service.now = func() time.Time { return scoringNow }

	got, err := service.ScoreWeek(context.Background(), 2)
	if err != nil {
		t.Fatalf("score week: %v", err)
	}
	if got.Complete {
		t.Fatalf("week with a recent kickoff must not be complete")
	}
	if got.Results[0].Score != 4 {
		t.Fatalf("unexpected live score: got=%d want=4", got.Results[0].Score)
	}
	if writes := picksRepo.sortedWrites(); len(writes) != 0 {
		t.Fatalf("expected no cache writes, got %+v", writes)
	}
}

func TestScoringService_ScoreWeek_CacheFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newScoringFixture()
	picksRepo.cacheErr = errors.New("database is locked")

	service := NewScoringService(testScope, pickem.DefaultScorer(), picksRepo, features, matches, logging.NewNop())
	service.now = func() time.Time { return scoringNow }

	got, err := service.ScoreWeek(context.Background(), 2)
	if err != nil {
		t.Fatalf("cache failure must not fail scoring: %v", err)
	}
	if len(got.Results) != 3 {
		t.Fatalf("unexpected result count: got=%d want=3", len(got.Results))
	}
}

func TestScoringService_ScoreWeek_ProviderFailure(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newScoringFixture()
	matches.errs = map[pickem.Week]error{2: errors.New("upstream 503")}

	service := NewScoringService(testScope, pickem.DefaultScorer(), picksRepo, features, matches, logging.NewNop())
	_, err := service.ScoreWeek(context.Background(), 2)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if writes := picksRepo.sortedWrites(); len(writes) != 0 {
		t.Fatalf("expected no cache writes, got %+v", writes)
	}
}

func TestScoringService_ScoreWeek_InvalidWeek(t *testing.T) {
	t.Parallel()

	picksRepo, features, matches := newScoringFixture()
	service := NewScoringService(testScope, pickem.DefaultScorer(), picksRepo, features, matches, logging.NewNop())

	for _, week := range []pickem.Week{0, 23, 160} {
		if _, err := service.ScoreWeek(context.Background(), week); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("week %d: expected ErrInvalidInput, got %v", week, err)
		}
	}
}
