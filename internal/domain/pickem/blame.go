package pickem

type BlameEntry struct {
	PoolerID int64
	Name     string
	Gained   int
	Lost     int
}

func (e BlameEntry) Net() int {
	return e.Gained - e.Lost
}

// TeamBlame tracks what picking one team earned or cost the pool. Lost
// counts the points a pooler would have earned by picking the opponent.
type TeamBlame struct {
	Team    string
	Gained  int
	Lost    int
	index   map[int64]int
	entries []BlameEntry
}

func NewTeamBlame(team string) *TeamBlame {
	return &TeamBlame{Team: NormalizeTeamCode(team), index: make(map[int64]int)}
}

func (b *TeamBlame) Net() int {
	return b.Gained - b.Lost
}

func (b *TeamBlame) Entries() []BlameEntry {
	out := make([]BlameEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *TeamBlame) entry(poolerID int64, name string) *BlameEntry {
	idx, ok := b.index[poolerID]
	if !ok {
		b.entries = append(b.entries, BlameEntry{PoolerID: poolerID, Name: name})
		idx = len(b.entries) - 1
		b.index[poolerID] = idx
	}
	return &b.entries[idx]
}

// BlameWeek folds the matches of one week in which the team played.
func (s Scorer) BlameWeek(blame *TeamBlame, snapshot WeekSnapshot) {
	entries, _ := snapshot.Sanitize()
	tier := snapshot.Week.Tier()

	for _, m := range snapshot.Matches {
		opponent, ok := m.Opponent(blame.Team)
		if !ok || !m.IsFinal() {
			continue
		}
		tally := NewTally(m.ID, entries)

		for i, record := range snapshot.Records {
			if entries[i].Picks[m.ID] != blame.Team {
				continue
			}
			e := blame.entry(record.PoolerID, record.Name)
			switch ClassifyPick(m, blame.Team) {
			case OutcomeWin:
				points := s.Table.Points(OutcomeWin, tally.IsUnique(blame.Team), tier)
				e.Gained += points
				blame.Gained += points
			case OutcomeTie:
				e.Gained += s.Table.Tie
				blame.Gained += s.Table.Tie
			case OutcomeLoss:
				points := s.Table.Points(OutcomeWin, tally.Count(opponent) == 0, tier)
				e.Lost += points
				blame.Lost += points
			}
		}
	}
}
