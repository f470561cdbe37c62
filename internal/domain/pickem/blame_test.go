package pickem

import "testing"

func TestScorer_BlameWeek(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week: 2,
		Matches: []Match{
			finalMatch("m1", "BUF", "MIA", 24, 17),
			finalMatch("m2", "NE", "BUF", 30, 10),
			finalMatch("m3", "KC", "DEN", 10, 20),
		},
		Records: []WeekPicks{
			{PoolerID: 1, Name: "A", Picks: Pick{"m1": "BUF", "m2": "BUF", "m3": "KC"}},
			{PoolerID: 2, Name: "B", Picks: Pick{"m1": "MIA", "m2": "BUF"}},
			{PoolerID: 3, Name: "C", Picks: Pick{"m1": "MIA", "m2": "NE"}},
		},
	}

	blame := NewTeamBlame("buf")
	DefaultScorer().BlameWeek(blame, snapshot)

	// m1: A alone on BUF and BUF won, unique win of 4.
	// m2: A and B on BUF, BUF lost, NE had one picker so each loses the shared 2.
	if blame.Gained != 4 || blame.Lost != 4 || blame.Net() != 0 {
		t.Fatalf("unexpected totals: gained=%d lost=%d", blame.Gained, blame.Lost)
	}

	entries := blame.Entries()
	if len(entries) != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].PoolerID != 1 || entries[0].Gained != 4 || entries[0].Lost != 2 {
		t.Fatalf("unexpected entry for A: %+v", entries[0])
	}
	if entries[1].PoolerID != 2 || entries[1].Gained != 0 || entries[1].Lost != 2 || entries[1].Net() != -2 {
		t.Fatalf("unexpected entry for B: %+v", entries[1])
	}
}

func TestScorer_BlameWeek_LossAgainstUnpickedOpponent(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    WildcardWeek,
		Matches: []Match{finalMatch("w1", "LAR", "SEA", 3, 9)},
		Records: []WeekPicks{{PoolerID: 5, Name: "E", Picks: Pick{"w1": "LAR"}}},
	}

	blame := NewTeamBlame("LAR")
	DefaultScorer().BlameWeek(blame, snapshot)
	if blame.Lost != 6 {
		t.Fatalf("opponent pick would have been unique: got=%d want=6", blame.Lost)
	}
}
