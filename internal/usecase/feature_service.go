package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

type FeatureService struct {
	source weekSource
	logger *logging.Logger
}

func NewFeatureService(
	scope PoolScope,
	featureRepo pickem.FeatureRepository,
	matches pickem.MatchProvider,
	logger *logging.Logger,
) *FeatureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeatureService{
		source: weekSource{scope: scope, featureRepo: featureRepo, matches: matches},
		logger: logger,
	}
}

func (s *FeatureService) GetFeature(ctx context.Context, week pickem.Week) (pickem.FeatureMatch, error) {
	if err := validateWeek(week); err != nil {
		return pickem.FeatureMatch{}, err
	}
	feature, ok, err := s.source.featureRepo.GetFeature(ctx, s.source.scope.Season, week)
	if err != nil {
		return pickem.FeatureMatch{}, fmt.Errorf("%w: get feature: %w", ErrDataUnavailable, err)
	}
	if !ok {
		return pickem.FeatureMatch{}, fmt.Errorf("%w: no feature match for week=%d", ErrNotFound, week)
	}
	return feature, nil
}

// SetFeature designates the matchIndex-th match of the week, counted from 1
// in provider order, as the over/under match.
func (s *FeatureService) SetFeature(ctx context.Context, week pickem.Week, matchIndex, targetTotal int) (_ pickem.FeatureMatch, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.SetFeature", weekAttrs(s.source.scope, week)...)
	defer func() { endSpan(span, err) }()

	if err := validateWeek(week); err != nil {
		return pickem.FeatureMatch{}, err
	}
	if targetTotal <= 0 {
		return pickem.FeatureMatch{}, fmt.Errorf("%w: target total must be > 0", ErrInvalidInput)
	}

	matches, err := s.source.matches.ListMatches(ctx, s.source.scope.Season, week)
	if err != nil {
		return pickem.FeatureMatch{}, fmt.Errorf("%w: list matches week=%d: %w", ErrDataUnavailable, week, err)
	}
	if matchIndex < 1 || matchIndex > len(matches) {
		return pickem.FeatureMatch{}, fmt.Errorf("%w: match index %d outside 1..%d", ErrInvalidInput, matchIndex, len(matches))
	}

	feature := pickem.FeatureMatch{MatchID: matches[matchIndex-1].ID, TargetTotal: targetTotal}
	if err := s.source.featureRepo.UpsertFeature(ctx, s.source.scope.Season, week, feature); err != nil {
		return pickem.FeatureMatch{}, fmt.Errorf("%w: upsert feature: %w", ErrDataUnavailable, err)
	}
	s.logger.InfoContext(ctx, "feature match set",
		"week", int(week),
		"match_id", feature.MatchID,
		"target_total", targetTotal,
	)
	return feature, nil
}
