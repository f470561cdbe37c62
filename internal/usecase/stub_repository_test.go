package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
)

type cacheWrite struct {
	recordID     int64
	score        int
	featureScore int
}

type stubPicksRepository struct {
	mu       sync.Mutex
	poolers  []pickem.Pooler
	records  map[pickem.Week][]pickem.WeekPicks
	current  pickem.Week
	cacheErr error
	writes   []cacheWrite
}

func (s *stubPicksRepository) ListPoolers(_ context.Context, poolID int64) ([]pickem.Pooler, error) {
	out := make([]pickem.Pooler, 0, len(s.poolers))
	for _, p := range s.poolers {
		if p.PoolID == poolID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPicksRepository) GetPooler(_ context.Context, poolerID int64) (pickem.Pooler, bool, error) {
	for _, p := range s.poolers {
		if p.ID == poolerID {
			return p, true, nil
		}
	}
	return pickem.Pooler{}, false, nil
}

func (s *stubPicksRepository) UpdateFavoriteTeam(context.Context, int64, string) error {
	return nil
}

func (s *stubPicksRepository) ListWeekPicks(_ context.Context, _ int64, _ int, week pickem.Week) ([]pickem.WeekPicks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPooler := make(map[int64]pickem.WeekPicks)
	for _, r := range s.records[week] {
		byPooler[r.PoolerID] = r
	}
	out := make([]pickem.WeekPicks, 0, len(s.poolers))
	for _, p := range s.poolers {
		record, ok := byPooler[p.ID]
		if !ok {
			record = pickem.WeekPicks{PoolerID: p.ID}
		}
		record.Name = p.Name
		record.Week = week
		out = append(out, record)
	}
	return out, nil
}

func (s *stubPicksRepository) GetWeekPicks(_ context.Context, poolerID int64, _ int, week pickem.Week) (pickem.WeekPicks, bool, error) {
	for _, r := range s.records[week] {
		if r.PoolerID == poolerID {
			return r, true, nil
		}
	}
	return pickem.WeekPicks{}, false, nil
}

func (s *stubPicksRepository) CacheResult(_ context.Context, pickRecordID int64, score, featureScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cacheErr != nil {
		return s.cacheErr
	}
	s.writes = append(s.writes, cacheWrite{recordID: pickRecordID, score: score, featureScore: featureScore})
	return nil
}

func (s *stubPicksRepository) PrimePicks(context.Context, int64, int, pickem.Week) (pickem.PrimeResult, error) {
	return pickem.PrimeResult{}, nil
}

func (s *stubPicksRepository) SavePicks(context.Context, int64, pickem.Pick, *pickem.FeatureSide) (bool, error) {
	return true, nil
}

func (s *stubPicksRepository) CurrentWeek(context.Context, int64, int) (pickem.Week, bool, error) {
	return s.current, s.current > 0, nil
}

func (s *stubPicksRepository) sortedWrites() []cacheWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]cacheWrite(nil), s.writes...)
	sort.Slice(out, func(i, j int) bool { return out[i].recordID < out[j].recordID })
	return out
}

type stubFeatureRepository struct {
	byWeek map[pickem.Week]pickem.FeatureMatch
}

func (s *stubFeatureRepository) GetFeature(_ context.Context, _ int, week pickem.Week) (pickem.FeatureMatch, bool, error) {
	f, ok := s.byWeek[week]
	return f, ok, nil
}

func (s *stubFeatureRepository) UpsertFeature(context.Context, int, pickem.Week, pickem.FeatureMatch) error {
	return nil
}

type stubMatchProvider struct {
	byWeek map[pickem.Week][]pickem.Match
	errs   map[pickem.Week]error
}

func (s *stubMatchProvider) ListMatches(_ context.Context, _ int, week pickem.Week) ([]pickem.Match, error) {
	if err := s.errs[week]; err != nil {
		return nil, err
	}
	return s.byWeek[week], nil
}

var testScope = PoolScope{PoolID: 1, Season: 2024}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func sidePtr(v pickem.FeatureSide) *pickem.FeatureSide {
	return &v
}

func finalMatch(id, away, home string, awayScore, homeScore int, kickoff time.Time) pickem.Match {
	return pickem.Match{
		ID:        id,
		AwayTeam:  away,
		HomeTeam:  home,
		AwayScore: intPtr(awayScore),
		HomeScore: intPtr(homeScore),
		Kickoff:   kickoff,
	}
}
