package pickem

import "time"

// DefaultFeatureBonus is awarded for a correct over/under pick.
const DefaultFeatureBonus = 3

type Scorer struct {
	Table        ScoreTable
	FeatureBonus int
	CacheBuffer  time.Duration
}

func DefaultScorer() Scorer {
	return Scorer{
		Table:        DefaultScoreTable(),
		FeatureBonus: DefaultFeatureBonus,
		CacheBuffer:  DefaultCacheBuffer,
	}
}

// WeekSnapshot is an immutable view of everything needed to score a week.
type WeekSnapshot struct {
	Week    Week
	Matches []Match
	Records []WeekPicks
	Feature *FeatureMatch
}

type WeekScore struct {
	Week        Week
	Complete    bool
	Results     []PickResult
	Diagnostics []Diagnostic
}

// Sanitize cleans every record of the snapshot and returns the pool's picks
// in record order.
func (s WeekSnapshot) Sanitize() ([]PoolerPicks, []Diagnostic) {
	entries := make([]PoolerPicks, 0, len(s.Records))
	var diags []Diagnostic
	for _, record := range s.Records {
		record.Week = s.Week
		picks, recordDiags := SanitizePicks(s.Matches, record)
		entries = append(entries, PoolerPicks{PoolerID: record.PoolerID, Picks: picks})
		diags = append(diags, recordDiags...)
	}
	return entries, diags
}

func (s WeekSnapshot) match(id string) (Match, bool) {
	for _, m := range s.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return Match{}, false
}

// ScorePooler sums the points of one pooler's sanitized picks.
func (s Scorer) ScorePooler(week Week, matches []Match, tallies map[string]Tally, picks Pick) int {
	if len(picks) == 0 {
		return 0
	}

	tier := week.Tier()
	total := 0
	for _, m := range matches {
		team, ok := picks[m.ID]
		if !ok {
			continue
		}
		outcome := ClassifyPick(m, team)
		total += s.Table.Points(outcome, tallies[m.ID].IsUnique(team), tier)
	}
	return total
}

// FeatureHit grades an over/under pick. decided is false until the match is
// final.
func FeatureHit(m Match, target int, side FeatureSide) (hit bool, decided bool) {
	combined, ok := m.CombinedTotal()
	if !ok {
		return false, false
	}
	switch side {
	case FeatureUnder:
		return combined <= target, true
	case FeatureOver:
		return combined > target, true
	default:
		return false, false
	}
}

// ScoreFeature returns the over/under bonus for one pooler.
func (s Scorer) ScoreFeature(snapshot WeekSnapshot, side *FeatureSide) int {
	if snapshot.Feature == nil || side == nil {
		return 0
	}
	m, ok := snapshot.match(snapshot.Feature.MatchID)
	if !ok {
		return 0
	}
	if hit, decided := FeatureHit(m, snapshot.Feature.TargetTotal, *side); decided && hit {
		return s.FeatureBonus
	}
	return 0
}

// ScoreWeek scores every record of the snapshot. Cached records are returned
// as stored.
func (s Scorer) ScoreWeek(snapshot WeekSnapshot, now time.Time) WeekScore {
	entries, diags := snapshot.Sanitize()
	tallies := NewTallies(snapshot.Matches, entries)

	out := WeekScore{
		Week:        snapshot.Week,
		Complete:    WeekComplete(snapshot.Matches, now, s.CacheBuffer),
		Results:     make([]PickResult, 0, len(snapshot.Records)),
		Diagnostics: diags,
	}
	for i, record := range snapshot.Records {
		result := PickResult{PoolerID: record.PoolerID, Name: record.Name}
		if record.IsCached() {
			result.Score = *record.CachedScore
			if record.CachedFeatureScore != nil {
				result.FeatureScore = *record.CachedFeatureScore
			}
			result.FromCache = true
			out.Results = append(out.Results, result)
			continue
		}

		result.Score = s.ScorePooler(snapshot.Week, snapshot.Matches, tallies, entries[i].Picks)
		result.FeatureScore = s.ScoreFeature(snapshot, record.FeaturePick)
		result.ShouldCache = ShouldCache(record, snapshot.Matches, now, s.CacheBuffer)
		out.Results = append(out.Results, result)
	}
	return out
}
