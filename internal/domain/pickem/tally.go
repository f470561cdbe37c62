package pickem

// PoolerPicks pairs a pooler with its sanitized picks for a week. Picks is
// nil for a pooler that submitted nothing.
type PoolerPicks struct {
	PoolerID int64
	Picks    Pick
}

// Tally counts how the pool split on one match.
type Tally struct {
	MatchID      string
	counts       map[string]int
	firstPicker  map[string]int64
	participants int
}

func NewTally(matchID string, entries []PoolerPicks) Tally {
	t := Tally{
		MatchID:     matchID,
		counts:      make(map[string]int, 2),
		firstPicker: make(map[string]int64, 2),
	}
	for _, entry := range entries {
		if entry.Picks == nil {
			continue
		}
		t.participants++
		team, ok := entry.Picks[matchID]
		if !ok {
			continue
		}
		if t.counts[team] == 0 {
			t.firstPicker[team] = entry.PoolerID
		}
		t.counts[team]++
	}
	return t
}

// NewTallies builds one tally per match.
func NewTallies(matches []Match, entries []PoolerPicks) map[string]Tally {
	out := make(map[string]Tally, len(matches))
	for _, m := range matches {
		out[m.ID] = NewTally(m.ID, entries)
	}
	return out
}

func (t Tally) Count(team string) int {
	return t.counts[team]
}

func (t Tally) Participants() int {
	return t.participants
}

// IsUnique reports whether the pooler who picked team is its only picker.
func (t Tally) IsUnique(team string) bool {
	return t.counts[team] == 1
}

// UniquePicker returns the single pooler that chose team.
func (t Tally) UniquePicker(team string) (int64, bool) {
	if !t.IsUnique(team) {
		return 0, false
	}
	return t.firstPicker[team], true
}

// UnanimousTeam returns the team every participating pooler chose.
func (t Tally) UnanimousTeam() (string, bool) {
	if t.participants == 0 || len(t.counts) != 1 {
		return "", false
	}
	for team, n := range t.counts {
		if n == t.participants {
			return team, true
		}
	}
	return "", false
}

// Teams lists the picked teams in a stable order given by the match sides.
func (t Tally) Teams(m Match) []string {
	out := make([]string, 0, 2)
	for _, team := range []string{m.AwayTeam, m.HomeTeam} {
		if t.counts[team] > 0 {
			out = append(out, team)
		}
	}
	return out
}
