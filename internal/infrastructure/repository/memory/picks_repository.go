package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
)

type pickKey struct {
	season   int
	week     pickem.Week
	poolerID int64
}

type pickRecord struct {
	id                 int64
	key                pickKey
	picks              pickem.Pick
	featurePick        *pickem.FeatureSide
	cachedScore        *int
	cachedFeatureScore *int
}

// PicksRepository keeps poolers and pick records in process memory.
type PicksRepository struct {
	mu           sync.RWMutex
	poolers      map[int64]pickem.Pooler
	records      map[pickKey]*pickRecord
	recordsByID  map[int64]*pickRecord
	nextPoolerID int64
	nextRecordID int64
}

func NewPicksRepository() *PicksRepository {
	return &PicksRepository{
		poolers:     make(map[int64]pickem.Pooler),
		records:     make(map[pickKey]*pickRecord),
		recordsByID: make(map[int64]*pickRecord),
	}
}

// AddPooler registers a pooler and returns it with its assigned id.
func (r *PicksRepository) AddPooler(pooler pickem.Pooler) pickem.Pooler {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextPoolerID++
	pooler.ID = r.nextPoolerID
	pooler.FavoriteTeam = pickem.NormalizeTeamCode(pooler.FavoriteTeam)
	r.poolers[pooler.ID] = pooler
	return pooler
}

func (r *PicksRepository) ListPoolers(_ context.Context, poolID int64) ([]pickem.Pooler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.poolersOf(poolID), nil
}

func (r *PicksRepository) GetPooler(_ context.Context, poolerID int64) (pickem.Pooler, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.poolers[poolerID]
	return p, ok, nil
}

func (r *PicksRepository) UpdateFavoriteTeam(_ context.Context, poolerID int64, team string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.poolers[poolerID]
	if !ok {
		return nil
	}
	p.FavoriteTeam = pickem.NormalizeTeamCode(team)
	r.poolers[poolerID] = p
	return nil
}

func (r *PicksRepository) ListWeekPicks(_ context.Context, poolID int64, season int, week pickem.Week) ([]pickem.WeekPicks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	poolers := r.poolersOf(poolID)
	out := make([]pickem.WeekPicks, 0, len(poolers))
	for _, p := range poolers {
		out = append(out, r.weekPicks(p, season, week))
	}
	return out, nil
}

func (r *PicksRepository) GetWeekPicks(_ context.Context, poolerID int64, season int, week pickem.Week) (pickem.WeekPicks, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.poolers[poolerID]
	if !ok {
		return pickem.WeekPicks{}, false, nil
	}
	if _, ok := r.records[pickKey{season: season, week: week, poolerID: poolerID}]; !ok {
		return pickem.WeekPicks{}, false, nil
	}
	return r.weekPicks(p, season, week), true, nil
}

func (r *PicksRepository) CacheResult(_ context.Context, pickRecordID int64, score, featureScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recordsByID[pickRecordID]
	if !ok {
		return fmt.Errorf("cache result: pick record %d not found", pickRecordID)
	}
	if rec.cachedScore != nil {
		return nil
	}
	rec.cachedScore = &score
	rec.cachedFeatureScore = &featureScore
	return nil
}

func (r *PicksRepository) PrimePicks(_ context.Context, poolerID int64, season int, week pickem.Week) (pickem.PrimeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey{season: season, week: week, poolerID: poolerID}
	rec, ok := r.records[key]
	if !ok {
		r.nextRecordID++
		rec = &pickRecord{id: r.nextRecordID, key: key}
		r.records[key] = rec
		r.recordsByID[rec.id] = rec
	}

	status := pickem.PrimeStatusPrimed
	if len(rec.picks) > 0 {
		status = pickem.PrimeStatusFilled
	}
	return pickem.PrimeResult{PickRecordID: rec.id, Status: status}, nil
}

func (r *PicksRepository) SavePicks(_ context.Context, pickRecordID int64, picks pickem.Pick, feature *pickem.FeatureSide) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recordsByID[pickRecordID]
	if !ok || rec.picks != nil || rec.cachedScore != nil {
		return false, nil
	}
	rec.picks = clonePick(picks)
	rec.featurePick = cloneFeatureSide(feature)
	return true, nil
}

func (r *PicksRepository) CurrentWeek(_ context.Context, poolID int64, season int) (pickem.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var current pickem.Week
	for key := range r.records {
		if key.season != season || key.week <= current {
			continue
		}
		if p, ok := r.poolers[key.poolerID]; ok && p.PoolID == poolID {
			current = key.week
		}
	}
	return current, current != 0, nil
}

func (r *PicksRepository) poolersOf(poolID int64) []pickem.Pooler {
	out := make([]pickem.Pooler, 0, len(r.poolers))
	for _, p := range r.poolers {
		if p.PoolID == poolID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *PicksRepository) weekPicks(p pickem.Pooler, season int, week pickem.Week) pickem.WeekPicks {
	out := pickem.WeekPicks{PoolerID: p.ID, Name: p.Name, Week: week}
	rec, ok := r.records[pickKey{season: season, week: week, poolerID: p.ID}]
	if !ok {
		return out
	}
	id := rec.id
	out.PickRecordID = &id
	out.Picks = clonePick(rec.picks)
	out.FeaturePick = cloneFeatureSide(rec.featurePick)
	out.CachedScore = cloneInt(rec.cachedScore)
	out.CachedFeatureScore = cloneInt(rec.cachedFeatureScore)
	return out
}

func clonePick(p pickem.Pick) pickem.Pick {
	if p == nil {
		return nil
	}
	out := make(pickem.Pick, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func cloneFeatureSide(side *pickem.FeatureSide) *pickem.FeatureSide {
	if side == nil {
		return nil
	}
	v := *side
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
