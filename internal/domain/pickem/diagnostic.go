package pickem

import (
	"fmt"
	"sort"
)

type DiagnosticReason string

const (
	ReasonUnknownMatch     DiagnosticReason = "unknown_match"
	ReasonUnknownTeam      DiagnosticReason = "unknown_team"
	ReasonTeamNotInMatch   DiagnosticReason = "team_not_in_match"
	ReasonUnreadableRecord DiagnosticReason = "unreadable_record"
	// ReasonUnreadableFeaturePick leaves the match picks scored; only the
	// over/under bonus is lost.
	ReasonUnreadableFeaturePick DiagnosticReason = "unreadable_feature_pick"
)

// Diagnostic is a non-fatal data-integrity warning. The offending pick is
// scored as if it were absent.
type Diagnostic struct {
	PoolerID int64
	Week     Week
	MatchID  string
	Team     string
	Reason   DiagnosticReason
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("pooler=%d week=%d match=%q team=%q: %s", d.PoolerID, int(d.Week), d.MatchID, d.Team, d.Reason)
}

// SanitizePicks keeps only picks that reference a match of the week and a
// team playing in it.
func SanitizePicks(matches []Match, record WeekPicks) (Pick, []Diagnostic) {
	if record.Unreadable {
		return nil, []Diagnostic{{PoolerID: record.PoolerID, Week: record.Week, Reason: ReasonUnreadableRecord}}
	}
	var diags []Diagnostic
	if record.FeatureUnreadable {
		diags = append(diags, Diagnostic{PoolerID: record.PoolerID, Week: record.Week, Reason: ReasonUnreadableFeaturePick})
	}
	if record.Picks == nil {
		return nil, diags
	}

	byID := make(map[string]Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	out := make(Pick, len(record.Picks))
	for matchID, raw := range record.Picks {
		if raw == NoPick || raw == "" {
			continue
		}
		diag := Diagnostic{PoolerID: record.PoolerID, Week: record.Week, MatchID: matchID, Team: raw}

		m, ok := byID[matchID]
		if !ok {
			diag.Reason = ReasonUnknownMatch
			diags = append(diags, diag)
			continue
		}
		team := NormalizeTeamCode(raw)
		if !IsKnownTeam(team) {
			diag.Reason = ReasonUnknownTeam
			diags = append(diags, diag)
			continue
		}
		if !m.Involves(team) {
			diag.Reason = ReasonTeamNotInMatch
			diags = append(diags, diag)
			continue
		}
		out[matchID] = team
	}
	SortDiagnostics(diags)
	return out, diags
}

// SortDiagnostics orders diagnostics by pooler, week, then match id.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].PoolerID != diags[j].PoolerID {
			return diags[i].PoolerID < diags[j].PoolerID
		}
		if diags[i].Week != diags[j].Week {
			return diags[i].Week < diags[j].Week
		}
		return diags[i].MatchID < diags[j].MatchID
	})
}
