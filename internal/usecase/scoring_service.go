package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

// WeekResult is the scored state of one week.
type WeekResult struct {
	Season      int
	Week        pickem.Week
	Complete    bool
	Feature     *pickem.FeatureMatch
	Results     []pickem.PickResult
	Diagnostics []pickem.Diagnostic
}

type ScoringService struct {
	source    weekSource
	picksRepo pickem.PicksRepository
	scorer    pickem.Scorer
	logger    *logging.Logger
	now       func() time.Time
}

func NewScoringService(
	scope PoolScope,
	scorer pickem.Scorer,
	picksRepo pickem.PicksRepository,
	featureRepo pickem.FeatureRepository,
	matches pickem.MatchProvider,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		source: weekSource{
			scope:       scope,
			picksRepo:   picksRepo,
			featureRepo: featureRepo,
			matches:     matches,
		},
		picksRepo: picksRepo,
		scorer:    scorer,
		logger:    logger,
		now:       time.Now,
	}
}

// ScoreWeek computes every pooler's score for week and caches the results
// that became final. A cache write failure only logs.
func (s *ScoringService) ScoreWeek(ctx context.Context, week pickem.Week) (_ WeekResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreWeek", weekAttrs(s.source.scope, week)...)
	defer func() { endSpan(span, err) }()

	if err := validateWeek(week); err != nil {
		return WeekResult{}, err
	}

	snapshot, err := s.source.load(ctx, week)
	if err != nil {
		return WeekResult{}, err
	}
	return s.scoreSnapshot(ctx, snapshot), nil
}

func (s *ScoringService) scoreSnapshot(ctx context.Context, snapshot pickem.WeekSnapshot) WeekResult {
	score := s.scorer.ScoreWeek(snapshot, s.now())
	s.logDiagnostics(ctx, score.Diagnostics)

	for i, result := range score.Results {
		if !result.ShouldCache {
			continue
		}
		recordID := *snapshot.Records[i].PickRecordID
		if err := s.picksRepo.CacheResult(ctx, recordID, result.Score, result.FeatureScore); err != nil {
			s.logger.WarnContext(ctx, "cache weekly score failed",
				"pooler_id", result.PoolerID,
				"week", int(snapshot.Week),
				"pick_record_id", recordID,
				"error", err,
			)
		}
	}

	return WeekResult{
		Season:      s.source.scope.Season,
		Week:        snapshot.Week,
		Complete:    score.Complete,
		Feature:     snapshot.Feature,
		Results:     score.Results,
		Diagnostics: score.Diagnostics,
	}
}

func (s *ScoringService) logDiagnostics(ctx context.Context, diags []pickem.Diagnostic) {
	for _, d := range diags {
		s.logger.WarnContext(ctx, "skipping unusable pick",
			"pooler_id", d.PoolerID,
			"week", int(d.Week),
			"match_id", d.MatchID,
			"team", d.Team,
			"reason", string(d.Reason),
		)
	}
}
