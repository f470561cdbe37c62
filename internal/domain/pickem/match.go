package pickem

import "time"

// Match is one scheduled game of a week. Scores are nil until recorded.
type Match struct {
	ID        string
	AwayTeam  string
	HomeTeam  string
	AwayScore *int
	HomeScore *int
	Kickoff   time.Time
}

// IsFinal reports whether both scores are present. A recorded 0-0 cannot be
// told apart from a game that has not started and is not final.
func (m Match) IsFinal() bool {
	if m.AwayScore == nil || m.HomeScore == nil {
		return false
	}
	return *m.AwayScore != 0 || *m.HomeScore != 0
}

// CombinedTotal returns the sum of both scores once the match is final.
func (m Match) CombinedTotal() (int, bool) {
	if !m.IsFinal() {
		return 0, false
	}
	return *m.AwayScore + *m.HomeScore, true
}

func (m Match) Involves(team string) bool {
	return team != "" && (team == m.AwayTeam || team == m.HomeTeam)
}

// Opponent returns the other side of the match for a participating team.
func (m Match) Opponent(team string) (string, bool) {
	switch team {
	case m.AwayTeam:
		return m.HomeTeam, true
	case m.HomeTeam:
		return m.AwayTeam, true
	default:
		return "", false
	}
}

type Outcome int

const (
	OutcomeNotPlayed Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeTie
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeTie:
		return "tie"
	default:
		return "not_played"
	}
}

// ClassifyPick grades a chosen team against the match result.
func ClassifyPick(m Match, team string) Outcome {
	if !m.IsFinal() || !m.Involves(team) {
		return OutcomeNotPlayed
	}

	away, home := *m.AwayScore, *m.HomeScore
	switch {
	case away == home:
		return OutcomeTie
	case away > home && team == m.AwayTeam, home > away && team == m.HomeTeam:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}

// Winner returns the winning team of a final, non-tied match.
func (m Match) Winner() (string, bool) {
	if !m.IsFinal() || *m.AwayScore == *m.HomeScore {
		return "", false
	}
	if *m.AwayScore > *m.HomeScore {
		return m.AwayTeam, true
	}
	return m.HomeTeam, true
}
