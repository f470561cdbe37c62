package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
)

type featureKey struct {
	season int
	week   pickem.Week
}

type FeatureRepository struct {
	mu    sync.RWMutex
	items map[featureKey]pickem.FeatureMatch
}

func NewFeatureRepository() *FeatureRepository {
	return &FeatureRepository{items: make(map[featureKey]pickem.FeatureMatch)}
}

func (r *FeatureRepository) GetFeature(_ context.Context, season int, week pickem.Week) (pickem.FeatureMatch, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[featureKey{season: season, week: week}]
	return item, ok, nil
}

func (r *FeatureRepository) UpsertFeature(_ context.Context, season int, week pickem.Week, feature pickem.FeatureMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[featureKey{season: season, week: week}] = feature
	return nil
}
