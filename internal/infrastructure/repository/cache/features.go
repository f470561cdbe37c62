package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	basecache "github.com/riskibarqy/pickem-pool/internal/platform/cache"
)

type FeatureRepository struct {
	next  pickem.FeatureRepository
	cache *basecache.Store
}

func NewFeatureRepository(next pickem.FeatureRepository, cache *basecache.Store) *FeatureRepository {
	return &FeatureRepository{next: next, cache: cache}
}

func (r *FeatureRepository) GetFeature(ctx context.Context, season int, week pickem.Week) (pickem.FeatureMatch, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, featureKey(season, week), func(ctx context.Context) (cachedFeature, time.Duration, error) {
		item, exists, err := r.next.GetFeature(ctx, season, week)
		return cachedFeature{value: item, exists: exists}, basecache.UseDefaultTTL, err
	})
	if err != nil {
		return pickem.FeatureMatch{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *FeatureRepository) UpsertFeature(ctx context.Context, season int, week pickem.Week, feature pickem.FeatureMatch) error {
	if err := r.next.UpsertFeature(ctx, season, week, feature); err != nil {
		return err
	}
	r.cache.Delete(ctx, featureKey(season, week))
	return nil
}

type cachedFeature struct {
	value  pickem.FeatureMatch
	exists bool
}

func featureKey(season int, week pickem.Week) string {
	return fmt.Sprintf("feature:%d:%d", season, int(week))
}
