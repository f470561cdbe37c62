package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	pickemmock "github.com/riskibarqy/pickem-pool/internal/mocks/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

func TestFeatureService_SetFeatureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	featureRepo := pickemmock.NewFeatureRepository(t)
	matches := pickemmock.NewMatchProvider(t)
	service := NewFeatureService(testScope, featureRepo, matches, logging.NewNop())
	week := pickem.SuperBowlWeek

	matches.
		On("ListMatches", ctx, testScope.Season, week).
		Return(weekThreeMatches(), nil).
		Twice()
	featureRepo.
		On("UpsertFeature", ctx, testScope.Season, week, pickem.FeatureMatch{MatchID: "e2", TargetTotal: 47}).
		Return(nil).
		Once()

	got, err := service.SetFeature(ctx, week, 2, 47)
	if err != nil {
		t.Fatalf("set feature: %v", err)
	}
	if got.MatchID != "e2" {
		t.Fatalf("unexpected feature match: got=%s want=e2", got.MatchID)
	}

	if _, err := service.SetFeature(ctx, week, 4, 47); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out of range index, got %v", err)
	}
	if _, err := service.SetFeature(ctx, week, 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero target, got %v", err)
	}
}

func TestFeatureService_GetFeatureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	featureRepo := pickemmock.NewFeatureRepository(t)
	service := NewFeatureService(testScope, featureRepo, pickemmock.NewMatchProvider(t), logging.NewNop())

	featureRepo.
		On("GetFeature", ctx, testScope.Season, pickem.Week(4)).
		Return(pickem.FeatureMatch{}, false, nil).
		Once()
	featureRepo.
		On("GetFeature", ctx, testScope.Season, pickem.Week(5)).
		Return(pickem.FeatureMatch{}, false, errors.New("no such table")).
		Once()

	if _, err := service.GetFeature(ctx, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetFeature(ctx, 5); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}
