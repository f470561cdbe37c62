package pickem

import (
	"errors"
	"fmt"
	"strings"
)

// NoPick marks a match the pooler deliberately skipped.
const NoPick = "N/A"

var ErrInvalidFeatureSide = errors.New("invalid feature pick")

// Pick maps match id to the chosen team code.
type Pick map[string]string

type FeatureSide string

const (
	FeatureUnder FeatureSide = "under"
	FeatureOver  FeatureSide = "over"
)

func ParseFeatureSide(raw string) (FeatureSide, error) {
	switch FeatureSide(strings.ToLower(strings.TrimSpace(raw))) {
	case FeatureUnder:
		return FeatureUnder, nil
	case FeatureOver:
		return FeatureOver, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFeatureSide, raw)
	}
}

// FeatureMatch designates the over/under match of a week.
type FeatureMatch struct {
	MatchID     string
	TargetTotal int
}

type Pooler struct {
	ID           int64
	PoolID       int64
	Name         string
	FavoriteTeam string
}

// WeekPicks is one pooler's stored record for a week. PickRecordID is nil
// when the pooler was never primed for the week; Picks is nil when nothing
// was submitted. Unreadable marks a stored pick map that could not be
// decoded; FeatureUnreadable does the same for the over/under pick alone.
type WeekPicks struct {
	PickRecordID       *int64
	PoolerID           int64
	Name               string
	Week               Week
	Picks              Pick
	FeaturePick        *FeatureSide
	CachedScore        *int
	CachedFeatureScore *int
	Unreadable         bool
	FeatureUnreadable  bool
}

func (w WeekPicks) IsCached() bool {
	return w.CachedScore != nil
}

func (w WeekPicks) Submitted() bool {
	return w.Picks != nil
}

// PickResult is the computed score of one pooler for one week.
type PickResult struct {
	PoolerID     int64
	Name         string
	Score        int
	FeatureScore int
	ShouldCache  bool
	FromCache    bool
}

func (r PickResult) Total() int {
	return r.Score + r.FeatureScore
}

// SeasonEntry is a pooler's standing. Total always equals the sum of
// PerWeekScores.
type SeasonEntry struct {
	PoolerID      int64
	Name          string
	PerWeekScores []int
	Total         int
}

func (e *SeasonEntry) AddWeek(score int) {
	e.PerWeekScores = append(e.PerWeekScores, score)
	e.Total += score
}

type PrimeStatus string

const (
	PrimeStatusPrimed PrimeStatus = "primed"
	PrimeStatusFilled PrimeStatus = "filled"
)

type PrimeResult struct {
	PickRecordID int64
	Status       PrimeStatus
}
