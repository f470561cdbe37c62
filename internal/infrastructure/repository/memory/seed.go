package memory

import "github.com/riskibarqy/pickem-pool/internal/domain/pickem"

// SeedPoolers registers poolers into poolID, keeping their order.
func SeedPoolers(repo *PicksRepository, poolID int64, poolers []pickem.Pooler) []pickem.Pooler {
	out := make([]pickem.Pooler, 0, len(poolers))
	for _, p := range poolers {
		p.PoolID = poolID
		out = append(out, repo.AddPooler(p))
	}
	return out
}
