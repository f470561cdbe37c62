package pickem

import "fmt"

// Rate is a hits/attempts counter. An empty rate reads as 0% or N/A.
type Rate struct {
	Hits     int
	Attempts int
}

func (r *Rate) Record(hit bool) {
	r.Attempts++
	if hit {
		r.Hits++
	}
}

func (r Rate) Add(other Rate) Rate {
	return Rate{Hits: r.Hits + other.Hits, Attempts: r.Attempts + other.Attempts}
}

func (r Rate) Percent() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Hits) * 100 / float64(r.Attempts)
}

func (r Rate) String() string {
	if r.Attempts == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%% (%d/%d)", r.Percent(), r.Hits, r.Attempts)
}

type PoolerStats struct {
	PoolerID  int64
	Name      string
	Unique    Rate
	OverUnder Rate
}

// StatsAccumulator collects pool statistics. Pooler counters live in a
// slice addressed through an id index, in registration order.
type StatsAccumulator struct {
	Unanimous Rate
	Unique    Rate
	OverUnder Rate

	index   map[int64]int
	poolers []PoolerStats
}

func NewStatsAccumulator() *StatsAccumulator {
	return &StatsAccumulator{index: make(map[int64]int)}
}

// Register adds a pooler slot if missing and returns its index.
func (a *StatsAccumulator) Register(poolerID int64, name string) int {
	if idx, ok := a.index[poolerID]; ok {
		if a.poolers[idx].Name == "" {
			a.poolers[idx].Name = name
		}
		return idx
	}
	a.poolers = append(a.poolers, PoolerStats{PoolerID: poolerID, Name: name})
	idx := len(a.poolers) - 1
	a.index[poolerID] = idx
	return idx
}

// AddMatch folds one final match into the unanimous and unique counters.
func (a *StatsAccumulator) AddMatch(m Match, tally Tally) {
	if !m.IsFinal() {
		return
	}

	if team, ok := tally.UnanimousTeam(); ok {
		a.Unanimous.Record(ClassifyPick(m, team) == OutcomeWin)
		return
	}

	for _, team := range tally.Teams(m) {
		poolerID, ok := tally.UniquePicker(team)
		if !ok {
			continue
		}
		hit := ClassifyPick(m, team) == OutcomeWin
		a.Unique.Record(hit)
		idx := a.Register(poolerID, "")
		a.poolers[idx].Unique.Record(hit)
	}
}

// AddFeature folds the over/under picks of one week once the feature match
// is final.
func (a *StatsAccumulator) AddFeature(m Match, feature FeatureMatch, records []WeekPicks) {
	if !m.IsFinal() {
		return
	}
	for _, record := range records {
		if record.FeaturePick == nil {
			continue
		}
		hit, decided := FeatureHit(m, feature.TargetTotal, *record.FeaturePick)
		if !decided {
			continue
		}
		a.OverUnder.Record(hit)
		idx := a.Register(record.PoolerID, record.Name)
		a.poolers[idx].OverUnder.Record(hit)
	}
}

// AddWeek folds a whole week snapshot.
func (a *StatsAccumulator) AddWeek(snapshot WeekSnapshot) {
	for _, record := range snapshot.Records {
		a.Register(record.PoolerID, record.Name)
	}

	entries, _ := snapshot.Sanitize()
	for _, m := range snapshot.Matches {
		a.AddMatch(m, NewTally(m.ID, entries))
	}

	if snapshot.Feature == nil {
		return
	}
	if m, ok := snapshot.match(snapshot.Feature.MatchID); ok {
		a.AddFeature(m, *snapshot.Feature, snapshot.Records)
	}
}

// Merge adds other into a. Poolers unknown to a are appended in other's order.
func (a *StatsAccumulator) Merge(other *StatsAccumulator) {
	if other == nil {
		return
	}
	a.Unanimous = a.Unanimous.Add(other.Unanimous)
	a.Unique = a.Unique.Add(other.Unique)
	a.OverUnder = a.OverUnder.Add(other.OverUnder)
	for _, p := range other.poolers {
		idx := a.Register(p.PoolerID, p.Name)
		a.poolers[idx].Unique = a.poolers[idx].Unique.Add(p.Unique)
		a.poolers[idx].OverUnder = a.poolers[idx].OverUnder.Add(p.OverUnder)
	}
}

// Poolers returns a copy of the per-pooler counters in registration order.
func (a *StatsAccumulator) Poolers() []PoolerStats {
	out := make([]PoolerStats, len(a.poolers))
	copy(out, a.poolers)
	return out
}
