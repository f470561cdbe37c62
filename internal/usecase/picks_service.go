package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

type SubmitPicksInput struct {
	PoolerID int64
	Week     pickem.Week
	// Picks maps match id to a team code or name. Matches left out, or
	// set to "N/A", are stored as skipped.
	Picks       map[string]string
	FeaturePick string
}

type PicksService struct {
	source weekSource
	logger *logging.Logger
}

func NewPicksService(
	scope PoolScope,
	picksRepo pickem.PicksRepository,
	featureRepo pickem.FeatureRepository,
	matches pickem.MatchProvider,
	logger *logging.Logger,
) *PicksService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PicksService{
		source: weekSource{
			scope:       scope,
			picksRepo:   picksRepo,
			featureRepo: featureRepo,
			matches:     matches,
		},
		logger: logger,
	}
}

func (s *PicksService) CurrentWeek(ctx context.Context) (pickem.Week, error) {
	scope := s.source.scope
	week, ok, err := s.source.picksRepo.CurrentWeek(ctx, scope.PoolID, scope.Season)
	if err != nil {
		return 0, fmt.Errorf("%w: find current week: %w", ErrDataUnavailable, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: no week primed for season=%d", ErrNotFound, scope.Season)
	}
	return week, nil
}

func (s *PicksService) ListMatches(ctx context.Context, week pickem.Week) (_ []pickem.Match, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.ListMatches", weekAttrs(s.source.scope, week)...)
	defer func() { endSpan(span, err) }()

	if err := validateWeek(week); err != nil {
		return nil, err
	}
	matches, err := s.source.matches.ListMatches(ctx, s.source.scope.Season, week)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches week=%d: %w", ErrDataUnavailable, week, err)
	}
	return matches, nil
}

func (s *PicksService) GetPooler(ctx context.Context, poolerID int64) (pickem.Pooler, error) {
	if poolerID <= 0 {
		return pickem.Pooler{}, fmt.Errorf("%w: pooler id must be > 0", ErrInvalidInput)
	}
	pooler, ok, err := s.source.picksRepo.GetPooler(ctx, poolerID)
	if err != nil {
		return pickem.Pooler{}, fmt.Errorf("%w: get pooler: %w", ErrDataUnavailable, err)
	}
	if !ok || pooler.PoolID != s.source.scope.PoolID {
		return pickem.Pooler{}, fmt.Errorf("%w: pooler=%d", ErrNotFound, poolerID)
	}
	return pooler, nil
}

// PrimeWeek opens a pick record for the pooler, or reports that one
// already holds picks.
func (s *PicksService) PrimeWeek(ctx context.Context, poolerID int64, week pickem.Week) (_ pickem.PrimeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.PrimeWeek", weekAttrs(s.source.scope, week)...)
	defer func() { endSpan(span, err) }()

	if err := validateWeek(week); err != nil {
		return pickem.PrimeResult{}, err
	}
	if _, err := s.GetPooler(ctx, poolerID); err != nil {
		return pickem.PrimeResult{}, err
	}

	result, err := s.source.picksRepo.PrimePicks(ctx, poolerID, s.source.scope.Season, week)
	if err != nil {
		return pickem.PrimeResult{}, fmt.Errorf("%w: prime picks: %w", ErrDataUnavailable, err)
	}
	s.logger.InfoContext(ctx, "pick record primed",
		"pooler_id", poolerID,
		"week", int(week),
		"pick_record_id", result.PickRecordID,
		"status", string(result.Status),
	)
	return result, nil
}

// SubmitPicks validates picks against the week's matches and stores a full
// pick map. A skipped match involving the pooler's favourite team is filled
// with that team. A record accepts picks once.
func (s *PicksService) SubmitPicks(ctx context.Context, input SubmitPicksInput) (_ pickem.WeekPicks, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.SubmitPicks", weekAttrs(s.source.scope, input.Week)...)
	defer func() { endSpan(span, err) }()

	if err := validateWeek(input.Week); err != nil {
		return pickem.WeekPicks{}, err
	}
	pooler, err := s.GetPooler(ctx, input.PoolerID)
	if err != nil {
		return pickem.WeekPicks{}, err
	}

	season := s.source.scope.Season
	record, ok, err := s.source.picksRepo.GetWeekPicks(ctx, pooler.ID, season, input.Week)
	if err != nil {
		return pickem.WeekPicks{}, fmt.Errorf("%w: get week picks: %w", ErrDataUnavailable, err)
	}
	if !ok || record.PickRecordID == nil {
		return pickem.WeekPicks{}, fmt.Errorf("%w: pooler=%d is not primed for week=%d", ErrNotFound, pooler.ID, input.Week)
	}
	if record.IsCached() {
		return pickem.WeekPicks{}, fmt.Errorf("%w: week=%d is already scored", ErrConflict, input.Week)
	}
	if record.Submitted() {
		return pickem.WeekPicks{}, fmt.Errorf("%w: pooler=%d already submitted picks for week=%d", ErrConflict, pooler.ID, input.Week)
	}

	matches, err := s.source.matches.ListMatches(ctx, season, input.Week)
	if err != nil {
		return pickem.WeekPicks{}, fmt.Errorf("%w: list matches week=%d: %w", ErrDataUnavailable, input.Week, err)
	}
	picks, err := buildPickMap(matches, input.Picks, pooler.FavoriteTeam)
	if err != nil {
		return pickem.WeekPicks{}, err
	}

	feature, err := s.resolveFeaturePick(ctx, input.Week, input.FeaturePick)
	if err != nil {
		return pickem.WeekPicks{}, err
	}

	saved, err := s.source.picksRepo.SavePicks(ctx, *record.PickRecordID, picks, feature)
	if err != nil {
		return pickem.WeekPicks{}, fmt.Errorf("%w: save picks: %w", ErrDataUnavailable, err)
	}
	if !saved {
		return pickem.WeekPicks{}, fmt.Errorf("%w: pick record %d is locked", ErrConflict, *record.PickRecordID)
	}

	record.Week = input.Week
	record.Name = pooler.Name
	record.Picks = picks
	record.FeaturePick = feature
	return record, nil
}

func (s *PicksService) resolveFeaturePick(ctx context.Context, week pickem.Week, raw string) (*pickem.FeatureSide, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	side, err := pickem.ParseFeatureSide(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, ok, err := s.source.featureRepo.GetFeature(ctx, s.source.scope.Season, week)
	if err != nil {
		return nil, fmt.Errorf("%w: get feature: %w", ErrDataUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: week=%d has no feature match", ErrInvalidInput, week)
	}
	return &side, nil
}

func buildPickMap(matches []pickem.Match, submitted map[string]string, favorite string) (pickem.Pick, error) {
	byID := make(map[string]pickem.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	out := make(pickem.Pick, len(matches))
	for matchID, raw := range submitted {
		m, ok := byID[matchID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown match %q", ErrInvalidInput, matchID)
		}
		value := strings.TrimSpace(raw)
		if value == "" || strings.EqualFold(value, pickem.NoPick) {
			continue
		}
		team, ok := pickem.TeamCodeFromName(value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, raw)
		}
		if !m.Involves(team) {
			return nil, fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, team, matchID)
		}
		out[m.ID] = team
	}

	favorite = pickem.NormalizeTeamCode(favorite)
	for _, m := range matches {
		if _, ok := out[m.ID]; ok {
			continue
		}
		if favorite != "" && m.Involves(favorite) {
			out[m.ID] = favorite
			continue
		}
		out[m.ID] = pickem.NoPick
	}
	return out, nil
}

// UpdateFavoriteTeam accepts a team code or full name.
func (s *PicksService) UpdateFavoriteTeam(ctx context.Context, poolerID int64, team string) (pickem.Pooler, error) {
	pooler, err := s.GetPooler(ctx, poolerID)
	if err != nil {
		return pickem.Pooler{}, err
	}
	code, ok := pickem.TeamCodeFromName(team)
	if !ok {
		return pickem.Pooler{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}
	if err := s.source.picksRepo.UpdateFavoriteTeam(ctx, poolerID, code); err != nil {
		return pickem.Pooler{}, fmt.Errorf("%w: update favorite team: %w", ErrDataUnavailable, err)
	}
	pooler.FavoriteTeam = code
	return pooler, nil
}
