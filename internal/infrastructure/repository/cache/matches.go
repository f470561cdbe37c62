package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	basecache "github.com/riskibarqy/pickem-pool/internal/platform/cache"
)

// MatchProvider caches weekly schedules. Weeks with every game final are
// kept for finalTTL, others for liveTTL.
type MatchProvider struct {
	next     pickem.MatchProvider
	cache    *basecache.Store
	liveTTL  time.Duration
	finalTTL time.Duration
}

func NewMatchProvider(next pickem.MatchProvider, cache *basecache.Store, liveTTL, finalTTL time.Duration) *MatchProvider {
	return &MatchProvider{next: next, cache: cache, liveTTL: liveTTL, finalTTL: finalTTL}
}

func (p *MatchProvider) ListMatches(ctx context.Context, season int, week pickem.Week) ([]pickem.Match, error) {
	items, err := basecache.Load(ctx, p.cache, matchesKey(season, week), func(ctx context.Context) ([]pickem.Match, time.Duration, error) {
		items, err := p.next.ListMatches(ctx, season, week)
		if err != nil {
			return nil, 0, err
		}
		ttl := p.liveTTL
		if allFinal(items) {
			ttl = p.finalTTL
		}
		return cloneMatches(items), ttl, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneMatches(items), nil
}

// Invalidate drops the cached schedule of one week.
func (p *MatchProvider) Invalidate(ctx context.Context, season int, week pickem.Week) {
	p.cache.Delete(ctx, matchesKey(season, week))
}

func matchesKey(season int, week pickem.Week) string {
	return fmt.Sprintf("matches:%d:%d", season, int(week))
}

func allFinal(items []pickem.Match) bool {
	if len(items) == 0 {
		return false
	}
	for _, m := range items {
		if !m.IsFinal() {
			return false
		}
	}
	return true
}

func cloneMatches(items []pickem.Match) []pickem.Match {
	if items == nil {
		return nil
	}
	out := make([]pickem.Match, len(items))
	for i, m := range items {
		out[i] = m
		out[i].AwayScore = cloneInt(m.AwayScore)
		out[i].HomeScore = cloneInt(m.HomeScore)
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
