package pickem

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidScoreTable = errors.New("invalid score table")

type WinPoints struct {
	Base   int
	Unique int
}

// ScoreTable maps a graded pick to points.
type ScoreTable struct {
	Tie int
	Win map[Tier]WinPoints
}

func DefaultScoreTable() ScoreTable {
	return ScoreTable{
		Tie: 1,
		Win: map[Tier]WinPoints{
			TierRegular:    {Base: 2, Unique: 4},
			TierWildcard:   {Base: 4, Unique: 6},
			TierDivisional: {Base: 6, Unique: 8},
			TierConference: {Base: 8, Unique: 10},
			TierSuperBowl:  {Base: 10, Unique: 12},
		},
	}
}

func (t ScoreTable) Points(outcome Outcome, unique bool, tier Tier) int {
	switch outcome {
	case OutcomeTie:
		return t.Tie
	case OutcomeWin:
		win := t.Win[tier]
		if unique {
			return win.Unique
		}
		return win.Base
	default:
		return 0
	}
}

func (t ScoreTable) Validate() error {
	if t.Tie < 0 {
		return fmt.Errorf("%w: tie points must be >= 0", ErrInvalidScoreTable)
	}
	for _, tier := range AllTiers {
		win, ok := t.Win[tier]
		if !ok {
			return fmt.Errorf("%w: missing tier %s", ErrInvalidScoreTable, tier)
		}
		if win.Base < 0 || win.Unique < win.Base {
			return fmt.Errorf("%w: tier %s needs 0 <= base <= unique", ErrInvalidScoreTable, tier)
		}
	}
	return nil
}

// ParseScoreTable applies overrides such as "regular:2/4,superbowl:10/12"
// on top of base.
func ParseScoreTable(raw string, base ScoreTable) (ScoreTable, error) {
	out := ScoreTable{Tie: base.Tie, Win: make(map[Tier]WinPoints, len(AllTiers))}
	for tier, win := range base.Win {
		out.Win[tier] = win
	}

	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return ScoreTable{}, fmt.Errorf("%w: item %q, expected tier:base/unique", ErrInvalidScoreTable, item)
		}
		tier, err := parseTier(segments[0])
		if err != nil {
			return ScoreTable{}, err
		}

		values := strings.SplitN(segments[1], "/", 2)
		if len(values) != 2 {
			return ScoreTable{}, fmt.Errorf("%w: item %q, expected base/unique", ErrInvalidScoreTable, item)
		}
		winBase, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return ScoreTable{}, fmt.Errorf("%w: base in %q: %v", ErrInvalidScoreTable, item, err)
		}
		winUnique, err := strconv.Atoi(strings.TrimSpace(values[1]))
		if err != nil {
			return ScoreTable{}, fmt.Errorf("%w: unique in %q: %v", ErrInvalidScoreTable, item, err)
		}
		out.Win[tier] = WinPoints{Base: winBase, Unique: winUnique}
	}

	if err := out.Validate(); err != nil {
		return ScoreTable{}, err
	}
	return out, nil
}

func parseTier(raw string) (Tier, error) {
	value := Tier(strings.ToLower(strings.TrimSpace(raw)))
	for _, tier := range AllTiers {
		if tier == value {
			return tier, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tier %q", ErrInvalidScoreTable, raw)
}
