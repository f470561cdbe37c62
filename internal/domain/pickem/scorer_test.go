package pickem

import (
	"reflect"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func sidePtr(v FeatureSide) *FeatureSide {
	return &v
}

var scorerNow = time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

func twoMatchWeek(kickoff time.Time) []Match {
	m1 := finalMatch("m1", "BUF", "MIA", 24, 17)
	m2 := finalMatch("m2", "KC", "DEN", 10, 20)
	m1.Kickoff = kickoff
	m2.Kickoff = kickoff
	return []Match{m1, m2}
}

func TestScorer_ScoreWeek_UniqueAndSharedWins(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    3,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{
			{PickRecordID: int64Ptr(1), PoolerID: 1, Name: "A", Picks: Pick{"m1": "BUF", "m2": "DEN"}},
			{PickRecordID: int64Ptr(2), PoolerID: 2, Name: "B", Picks: Pick{"m1": "MIA", "m2": "DEN"}},
			{PickRecordID: int64Ptr(3), PoolerID: 3, Name: "C", Picks: Pick{"m1": "MIA", "m2": "DEN"}},
		},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	want := map[int64]int{1: 4 + 2, 2: 2, 3: 2}
	for _, r := range got.Results {
		if r.Score != want[r.PoolerID] {
			t.Fatalf("unexpected score for pooler %d: got=%d want=%d", r.PoolerID, r.Score, want[r.PoolerID])
		}
		if !r.ShouldCache {
			t.Fatalf("expected pooler %d to be cacheable", r.PoolerID)
		}
	}
	if !got.Complete {
		t.Fatalf("expected week to be complete")
	}
}

func TestScorer_ScoreWeek_UniqueOnBothMatches(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    3,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{
			{PoolerID: 1, Name: "A", Picks: Pick{"m1": "BUF", "m2": "DEN"}},
			{PoolerID: 2, Name: "B", Picks: Pick{"m1": "MIA", "m2": "KC"}},
			{PoolerID: 3, Name: "C", Picks: Pick{"m1": "MIA", "m2": "KC"}},
		},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if got.Results[0].Score != 8 {
		t.Fatalf("unexpected unique score: got=%d want=8", got.Results[0].Score)
	}
	if got.Results[1].Score != 0 || got.Results[2].Score != 0 {
		t.Fatalf("expected losing poolers to score 0, got=%d,%d", got.Results[1].Score, got.Results[2].Score)
	}
	for _, r := range got.Results {
		if r.ShouldCache {
			t.Fatalf("pooler %d has no pick record and must not be cached", r.PoolerID)
		}
	}
}

func TestScorer_ScorePooler_TierValues(t *testing.T) {
	t.Parallel()

	matches := []Match{finalMatch("m1", "BUF", "MIA", 24, 17), finalMatch("m2", "KC", "DEN", 21, 21)}
	entries := []PoolerPicks{
		{PoolerID: 1, Picks: Pick{"m1": "BUF", "m2": "KC"}},
		{PoolerID: 2, Picks: Pick{"m1": "MIA", "m2": "KC"}},
	}
	tallies := NewTallies(matches, entries)
	scorer := DefaultScorer()

	tests := []struct {
		week Week
		want int
	}{
		{week: 5, want: 4 + 1},
		{week: WildcardWeek, want: 6 + 1},
		{week: DivisionalWeek, want: 8 + 1},
		{week: ConferenceWeek, want: 10 + 1},
		{week: SuperBowlWeek, want: 12 + 1},
	}
	for _, tt := range tests {
		if got := scorer.ScorePooler(tt.week, matches, tallies, entries[0].Picks); got != tt.want {
			t.Fatalf("week %d: got=%d want=%d", tt.week, got, tt.want)
		}
	}
}

func TestScorer_ScoreWeek_MissingPicksScoreZero(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    1,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{
			{PoolerID: 1, Name: "A", Picks: Pick{"m1": "BUF", "m2": NoPick}},
			{PoolerID: 2, Name: "B"},
		},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if got.Results[0].Score != 4 {
		t.Fatalf("unexpected partial pick score: got=%d want=4", got.Results[0].Score)
	}
	if got.Results[1].Score != 0 {
		t.Fatalf("unexpected absent pick score: got=%d want=0", got.Results[1].Score)
	}
	if len(got.Diagnostics) != 0 {
		t.Fatalf("skipped picks must not produce diagnostics, got=%v", got.Diagnostics)
	}
}

func TestScorer_ScoreWeek_MalformedPicksAreDiagnosed(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    2,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{
			{PoolerID: 1, Name: "A", Picks: Pick{"m1": "buf", "m2": "XXX", "m9": "KC"}},
			{PoolerID: 2, Name: "B", Picks: Pick{"m1": "KC"}},
			{PoolerID: 3, Name: "C", Unreadable: true},
		},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if got.Results[0].Score != 4 {
		t.Fatalf("expected only the valid pick to score: got=%d want=4", got.Results[0].Score)
	}
	reasons := make([]DiagnosticReason, 0, len(got.Diagnostics))
	for _, d := range got.Diagnostics {
		reasons = append(reasons, d.Reason)
	}
	wantReasons := []DiagnosticReason{ReasonUnknownTeam, ReasonUnknownMatch, ReasonTeamNotInMatch, ReasonUnreadableRecord}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("unexpected diagnostics: got=%v want=%v", reasons, wantReasons)
	}
}

func TestScorer_ScoreWeek_UnreadableRecordsStayUncached(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    2,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{
			{PickRecordID: int64Ptr(9), PoolerID: 1, Name: "A", Unreadable: true},
			{PickRecordID: int64Ptr(10), PoolerID: 2, Name: "B", Picks: Pick{"m1": "BUF"}, FeatureUnreadable: true},
		},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if !got.Complete {
		t.Fatalf("expected complete week")
	}
	for _, r := range got.Results {
		if r.ShouldCache {
			t.Fatalf("unreadable record must not be cached: %+v", r)
		}
	}
	if got.Results[0].Score != 0 || got.Results[1].Score != 4 {
		t.Fatalf("unexpected scores: got=%d,%d want=0,4", got.Results[0].Score, got.Results[1].Score)
	}
	reasons := make([]DiagnosticReason, 0, len(got.Diagnostics))
	for _, d := range got.Diagnostics {
		reasons = append(reasons, d.Reason)
	}
	wantReasons := []DiagnosticReason{ReasonUnreadableRecord, ReasonUnreadableFeaturePick}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("unexpected diagnostics: got=%v want=%v", reasons, wantReasons)
	}
}

func TestScorer_ScoreWeek_InProgressWeekIsNotCached(t *testing.T) {
	t.Parallel()

	matches := twoMatchWeek(scorerNow.Add(-48 * time.Hour))
	matches[1].Kickoff = scorerNow.Add(-7 * time.Hour)
	snapshot := WeekSnapshot{
		Week:    4,
		Matches: matches,
		Records: []WeekPicks{{PickRecordID: int64Ptr(10), PoolerID: 1, Name: "A", Picks: Pick{"m1": "BUF"}}},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if got.Complete || got.Results[0].ShouldCache {
		t.Fatalf("week with a match inside the buffer must not be cached")
	}

	matches[1].Kickoff = scorerNow.Add(-8 * time.Hour)
	got = DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if got.Complete {
		t.Fatalf("kickoff exactly at the cutoff must not count as complete")
	}
}

func TestScorer_ScoreWeek_CachedRecordIsReturnedAsStored(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    6,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{{
			PickRecordID:       int64Ptr(4),
			PoolerID:           1,
			Name:               "A",
			Picks:              Pick{"m1": "BUF"},
			CachedScore:        intPtr(11),
			CachedFeatureScore: intPtr(3),
		}},
	}

	got := DefaultScorer().ScoreWeek(snapshot, scorerNow).Results[0]
	if got.Score != 11 || got.FeatureScore != 3 || !got.FromCache || got.ShouldCache {
		t.Fatalf("unexpected cached result: %+v", got)
	}
}

func TestScorer_ScoreWeek_Idempotent(t *testing.T) {
	t.Parallel()

	snapshot := WeekSnapshot{
		Week:    3,
		Matches: twoMatchWeek(scorerNow.Add(-48 * time.Hour)),
		Records: []WeekPicks{
			{PickRecordID: int64Ptr(1), PoolerID: 1, Name: "A", Picks: Pick{"m1": "BUF", "m2": "DEN"}},
			{PickRecordID: int64Ptr(2), PoolerID: 2, Name: "B", Picks: Pick{"m1": "MIA"}},
		},
		Feature: &FeatureMatch{MatchID: "m1", TargetTotal: 40},
	}

	first := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	second := DefaultScorer().ScoreWeek(snapshot, scorerNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got=%+v and %+v", first, second)
	}
}

func TestScorer_ScoreFeature(t *testing.T) {
	t.Parallel()

	featureMatch := finalMatch("f1", "PHI", "DAL", 27, 23)
	snapshot := WeekSnapshot{
		Week:    8,
		Matches: []Match{featureMatch, {ID: "f2", AwayTeam: "NYG", HomeTeam: "NYJ"}},
		Feature: &FeatureMatch{MatchID: "f1", TargetTotal: 45},
	}
	scorer := DefaultScorer()

	if got := scorer.ScoreFeature(snapshot, sidePtr(FeatureOver)); got != 3 {
		t.Fatalf("over above target: got=%d want=3", got)
	}
	if got := scorer.ScoreFeature(snapshot, sidePtr(FeatureUnder)); got != 0 {
		t.Fatalf("under above target: got=%d want=0", got)
	}
	if got := scorer.ScoreFeature(snapshot, nil); got != 0 {
		t.Fatalf("missing feature pick: got=%d want=0", got)
	}

	snapshot.Feature = &FeatureMatch{MatchID: "f1", TargetTotal: 50}
	if got := scorer.ScoreFeature(snapshot, sidePtr(FeatureUnder)); got != 3 {
		t.Fatalf("under at target: got=%d want=3", got)
	}
	if got := scorer.ScoreFeature(snapshot, sidePtr(FeatureOver)); got != 0 {
		t.Fatalf("over at target: got=%d want=0", got)
	}

	snapshot.Feature = &FeatureMatch{MatchID: "f2", TargetTotal: 40}
	if got := scorer.ScoreFeature(snapshot, sidePtr(FeatureUnder)); got != 0 {
		t.Fatalf("unfinished feature match: got=%d want=0", got)
	}

	snapshot.Feature = nil
	if got := scorer.ScoreFeature(snapshot, sidePtr(FeatureOver)); got != 0 {
		t.Fatalf("no feature match: got=%d want=0", got)
	}
}

func TestScoreTable(t *testing.T) {
	t.Parallel()

	table := DefaultScoreTable()
	for _, tier := range AllTiers {
		if got := table.Points(OutcomeTie, true, tier); got != 1 {
			t.Fatalf("tie %s unique: got=%d want=1", tier, got)
		}
		if got := table.Points(OutcomeLoss, true, tier); got != 0 {
			t.Fatalf("loss %s: got=%d want=0", tier, got)
		}
		if got := table.Points(OutcomeNotPlayed, false, tier); got != 0 {
			t.Fatalf("not played %s: got=%d want=0", tier, got)
		}
	}
	if got := table.Points(OutcomeWin, false, TierRegular); got != 2 {
		t.Fatalf("regular shared win: got=%d want=2", got)
	}
	if got := table.Points(OutcomeWin, true, TierRegular); got != 4 {
		t.Fatalf("regular unique win: got=%d want=4", got)
	}
	if got := table.Points(OutcomeWin, true, TierSuperBowl); got != 12 {
		t.Fatalf("super bowl unique win: got=%d want=12", got)
	}
}

func TestParseScoreTable(t *testing.T) {
	t.Parallel()

	table, err := ParseScoreTable(" regular:3/5 , superbowl:20/25", DefaultScoreTable())
	if err != nil {
		t.Fatalf("parse score table: %v", err)
	}
	if got := table.Win[TierRegular]; got != (WinPoints{Base: 3, Unique: 5}) {
		t.Fatalf("unexpected regular points: %+v", got)
	}
	if got := table.Win[TierWildcard]; got != (WinPoints{Base: 4, Unique: 6}) {
		t.Fatalf("wildcard should keep its default, got %+v", got)
	}
	if DefaultScoreTable().Win[TierRegular].Base != 2 {
		t.Fatalf("parsing must not mutate the base table")
	}

	for _, raw := range []string{"regular", "preseason:1/2", "regular:x/2", "regular:4/2", "regular:2"} {
		if _, err := ParseScoreTable(raw, DefaultScoreTable()); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
