package httpapi

import (
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/usecase"
)

type setFeatureRequest struct {
	MatchIndex  int `json:"match_index" validate:"required,gte=1"`
	TargetTotal int `json:"target_total" validate:"required,gt=0"`
}

type submitPicksRequest struct {
	Picks       map[string]string `json:"picks" validate:"required,dive,keys,required,endkeys"`
	FeaturePick string            `json:"feature_pick" validate:"omitempty,max=16"`
}

type favoriteTeamRequest struct {
	Team string `json:"team" validate:"required,max=64"`
}

type weekDTO struct {
	Week          int    `json:"week"`
	Label         string `json:"label"`
	Tier          string `json:"tier"`
	ProviderRound int    `json:"provider_round"`
}

type matchDTO struct {
	ID        string `json:"id"`
	AwayTeam  string `json:"away_team"`
	HomeTeam  string `json:"home_team"`
	AwayScore *int   `json:"away_score"`
	HomeScore *int   `json:"home_score"`
	Kickoff   string `json:"kickoff"`
	Final     bool   `json:"final"`
}

type featureDTO struct {
	Week        int    `json:"week"`
	MatchID     string `json:"match_id"`
	TargetTotal int    `json:"target_total"`
}

type pickResultDTO struct {
	PoolerID     int64  `json:"pooler_id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	FeatureScore int    `json:"feature_score"`
	Total        int    `json:"total"`
	FromCache    bool   `json:"from_cache"`
}

type diagnosticDTO struct {
	PoolerID int64  `json:"pooler_id"`
	MatchID  string `json:"match_id,omitempty"`
	Team     string `json:"team,omitempty"`
	Reason   string `json:"reason"`
}

type weekResultDTO struct {
	Season      int             `json:"season"`
	Week        weekDTO         `json:"week"`
	Complete    bool            `json:"complete"`
	Feature     *featureDTO     `json:"feature,omitempty"`
	Results     []pickResultDTO `json:"results"`
	Diagnostics []diagnosticDTO `json:"diagnostics,omitempty"`
}

type seasonEntryDTO struct {
	Rank          int    `json:"rank"`
	PoolerID      int64  `json:"pooler_id"`
	Name          string `json:"name"`
	Total         int    `json:"total"`
	PerWeekScores []int  `json:"per_week_scores"`
}

type standingsDTO struct {
	Season  int              `json:"season"`
	Through int              `json:"through_week"`
	Entries []seasonEntryDTO `json:"entries"`
}

type rateDTO struct {
	Hits     int     `json:"hits"`
	Attempts int     `json:"attempts"`
	Percent  float64 `json:"percent"`
	Display  string  `json:"display"`
}

type poolerStatsDTO struct {
	PoolerID  int64   `json:"pooler_id"`
	Name      string  `json:"name"`
	Unique    rateDTO `json:"unique"`
	OverUnder rateDTO `json:"over_under"`
}

type poolStatsDTO struct {
	Season    int              `json:"season"`
	Through   int              `json:"through_week"`
	Unanimous rateDTO          `json:"unanimous"`
	Unique    rateDTO          `json:"unique"`
	OverUnder rateDTO          `json:"over_under"`
	Poolers   []poolerStatsDTO `json:"poolers"`
}

type blameEntryDTO struct {
	PoolerID int64  `json:"pooler_id"`
	Name     string `json:"name"`
	Gained   int    `json:"gained"`
	Lost     int    `json:"lost"`
	Net      int    `json:"net"`
}

type blameDTO struct {
	Season  int             `json:"season"`
	Through int             `json:"through_week"`
	Team    string          `json:"team"`
	Gained  int             `json:"gained"`
	Lost    int             `json:"lost"`
	Net     int             `json:"net"`
	Entries []blameEntryDTO `json:"entries"`
}

type primeDTO struct {
	PickRecordID int64  `json:"pick_record_id"`
	Status       string `json:"status"`
}

type weekPicksDTO struct {
	PickRecordID int64             `json:"pick_record_id"`
	PoolerID     int64             `json:"pooler_id"`
	Name         string            `json:"name"`
	Week         weekDTO           `json:"week"`
	Picks        map[string]string `json:"picks"`
	FeaturePick  string            `json:"feature_pick,omitempty"`
}

type poolerDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FavoriteTeam string `json:"favorite_team"`
}

type warmDTO struct {
	Season    int `json:"season"`
	Weeks     int `json:"weeks"`
	Cacheable int `json:"cacheable"`
}

func weekToDTO(w pickem.Week) weekDTO {
	return weekDTO{
		Week:          int(w),
		Label:         w.String(),
		Tier:          string(w.Tier()),
		ProviderRound: w.ProviderRound(),
	}
}

func matchToDTO(m pickem.Match) matchDTO {
	out := matchDTO{
		ID:        m.ID,
		AwayTeam:  m.AwayTeam,
		HomeTeam:  m.HomeTeam,
		AwayScore: m.AwayScore,
		HomeScore: m.HomeScore,
		Final:     m.IsFinal(),
	}
	if !m.Kickoff.IsZero() {
		out.Kickoff = m.Kickoff.UTC().Format(time.RFC3339)
	}
	return out
}

func featureToDTO(week pickem.Week, f pickem.FeatureMatch) featureDTO {
	return featureDTO{Week: int(week), MatchID: f.MatchID, TargetTotal: f.TargetTotal}
}

func weekResultToDTO(v usecase.WeekResult) weekResultDTO {
	out := weekResultDTO{
		Season:   v.Season,
		Week:     weekToDTO(v.Week),
		Complete: v.Complete,
		Results:  make([]pickResultDTO, 0, len(v.Results)),
	}
	if v.Feature != nil {
		f := featureToDTO(v.Week, *v.Feature)
		out.Feature = &f
	}
	for _, r := range v.Results {
		out.Results = append(out.Results, pickResultDTO{
			PoolerID:     r.PoolerID,
			Name:         r.Name,
			Score:        r.Score,
			FeatureScore: r.FeatureScore,
			Total:        r.Total(),
			FromCache:    r.FromCache,
		})
	}
	for _, d := range v.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticDTO{
			PoolerID: d.PoolerID,
			MatchID:  d.MatchID,
			Team:     d.Team,
			Reason:   string(d.Reason),
		})
	}
	return out
}

// standingsToDTO ranks entries that are already sorted by total. Equal
// totals share a rank.
func standingsToDTO(v usecase.SeasonStandings) standingsDTO {
	out := standingsDTO{
		Season:  v.Season,
		Through: int(v.Through),
		Entries: make([]seasonEntryDTO, 0, len(v.Entries)),
	}
	rank := 0
	for i, e := range v.Entries {
		if i == 0 || e.Total != v.Entries[i-1].Total {
			rank = i + 1
		}
		scores := e.PerWeekScores
		if scores == nil {
			scores = []int{}
		}
		out.Entries = append(out.Entries, seasonEntryDTO{
			Rank:          rank,
			PoolerID:      e.PoolerID,
			Name:          e.Name,
			Total:         e.Total,
			PerWeekScores: scores,
		})
	}
	return out
}

func rateToDTO(r pickem.Rate) rateDTO {
	return rateDTO{
		Hits:     r.Hits,
		Attempts: r.Attempts,
		Percent:  r.Percent(),
		Display:  r.String(),
	}
}

func poolStatsToDTO(v usecase.PoolStats) poolStatsDTO {
	out := poolStatsDTO{
		Season:    v.Season,
		Through:   int(v.Through),
		Unanimous: rateToDTO(v.Unanimous),
		Unique:    rateToDTO(v.Unique),
		OverUnder: rateToDTO(v.OverUnder),
		Poolers:   make([]poolerStatsDTO, 0, len(v.Poolers)),
	}
	for _, p := range v.Poolers {
		out.Poolers = append(out.Poolers, poolerStatsDTO{
			PoolerID:  p.PoolerID,
			Name:      p.Name,
			Unique:    rateToDTO(p.Unique),
			OverUnder: rateToDTO(p.OverUnder),
		})
	}
	return out
}

func blameToDTO(v usecase.BlameReport) blameDTO {
	out := blameDTO{
		Season:  v.Season,
		Through: int(v.Through),
		Team:    v.Team,
		Gained:  v.Gained,
		Lost:    v.Lost,
		Net:     v.Gained - v.Lost,
		Entries: make([]blameEntryDTO, 0, len(v.Entries)),
	}
	for _, e := range v.Entries {
		out.Entries = append(out.Entries, blameEntryDTO{
			PoolerID: e.PoolerID,
			Name:     e.Name,
			Gained:   e.Gained,
			Lost:     e.Lost,
			Net:      e.Net(),
		})
	}
	return out
}

func weekPicksToDTO(v pickem.WeekPicks) weekPicksDTO {
	out := weekPicksDTO{
		PoolerID: v.PoolerID,
		Name:     v.Name,
		Week:     weekToDTO(v.Week),
		Picks:    map[string]string(v.Picks),
	}
	if v.PickRecordID != nil {
		out.PickRecordID = *v.PickRecordID
	}
	if v.FeaturePick != nil {
		out.FeaturePick = string(*v.FeaturePick)
	}
	return out
}

func poolerToDTO(p pickem.Pooler) poolerDTO {
	return poolerDTO{ID: p.ID, Name: p.Name, FavoriteTeam: p.FavoriteTeam}
}
