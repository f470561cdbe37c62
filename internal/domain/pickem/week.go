package pickem

import (
	"errors"
	"fmt"
)

var ErrInvalidWeek = errors.New("invalid week")

// Week is the canonical week identifier: 1..18 regular season, 19..22 playoffs.
type Week int

const (
	FirstWeek        Week = 1
	LastRegularWeek  Week = 18
	WildcardWeek     Week = 19
	DivisionalWeek   Week = 20
	ConferenceWeek   Week = 21
	SuperBowlWeek    Week = 22
	WeeksPerSeason        = int(SuperBowlWeek)
	legacyWildcard        = 160
	legacyDivisional      = 125
	legacyConference      = 150
	legacySuperBowl       = 200
)

type Tier string

const (
	TierRegular    Tier = "regular"
	TierWildcard   Tier = "wildcard"
	TierDivisional Tier = "divisional"
	TierConference Tier = "conference"
	TierSuperBowl  Tier = "superbowl"
)

var AllTiers = []Tier{TierRegular, TierWildcard, TierDivisional, TierConference, TierSuperBowl}

func ParseWeek(v int) (Week, error) {
	w := Week(v)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidWeek, v, FirstWeek, SuperBowlWeek)
	}
	return w, nil
}

// WeekFromLegacyRound accepts both canonical identifiers and the playoff
// round codes used by the schedule provider and older pick records.
func WeekFromLegacyRound(v int) (Week, error) {
	switch v {
	case legacyWildcard:
		return WildcardWeek, nil
	case legacyDivisional:
		return DivisionalWeek, nil
	case legacyConference:
		return ConferenceWeek, nil
	case legacySuperBowl:
		return SuperBowlWeek, nil
	}
	return ParseWeek(v)
}

func (w Week) Valid() bool {
	return w >= FirstWeek && w <= SuperBowlWeek
}

func (w Week) Tier() Tier {
	switch w {
	case WildcardWeek:
		return TierWildcard
	case DivisionalWeek:
		return TierDivisional
	case ConferenceWeek:
		return TierConference
	case SuperBowlWeek:
		return TierSuperBowl
	default:
		return TierRegular
	}
}

func (w Week) IsPlayoff() bool {
	return w > LastRegularWeek && w <= SuperBowlWeek
}

// ProviderRound returns the round code the schedule provider expects.
func (w Week) ProviderRound() int {
	switch w {
	case WildcardWeek:
		return legacyWildcard
	case DivisionalWeek:
		return legacyDivisional
	case ConferenceWeek:
		return legacyConference
	case SuperBowlWeek:
		return legacySuperBowl
	default:
		return int(w)
	}
}

func (w Week) String() string {
	switch w.Tier() {
	case TierWildcard:
		return "Wildcard"
	case TierDivisional:
		return "Divisional"
	case TierConference:
		return "Conference"
	case TierSuperBowl:
		return "Super Bowl"
	default:
		return fmt.Sprintf("Week %d", int(w))
	}
}

// SeasonWeeks lists every week in canonical order.
func SeasonWeeks() []Week {
	return WeeksThrough(SuperBowlWeek)
}

// WeeksThrough lists weeks 1..last in canonical order.
func WeeksThrough(last Week) []Week {
	if last < FirstWeek {
		return nil
	}
	if last > SuperBowlWeek {
		last = SuperBowlWeek
	}
	out := make([]Week, 0, int(last))
	for w := FirstWeek; w <= last; w++ {
		out = append(out, w)
	}
	return out
}
